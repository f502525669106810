package model

// ================ Config ================
type ConversationConfig struct {
	TTL   string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"6"`
	}
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.2"`
}

type BookingPromptConfig struct {
	HospitalName string `envconfig:"PROMPT_HOSPITAL_NAME" default:"City General Hospital"`
}

type JudgeModelConfig struct {
	Model       string  `envconfig:"JUDGE_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"JUDGE_MAX_TOKENS" default:"500"`
	Temperature float32 `envconfig:"JUDGE_TEMPERATURE" default:"0"`
}
