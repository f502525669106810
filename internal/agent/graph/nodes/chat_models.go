package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey     string
	BaseURL    string
	RespConfig *model.ResponseModelConfig
}

// ChatModels holds the response chat model steering the booking conversation.
type ChatModels struct {
	Response          *gemini.ChatModel
	ResponseModelName string
}

// NewChatModels creates the response chat model with the given configuration
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Response model")
		return nil, fmt.Errorf("error creating Response model: %w", err)
	}

	return &ChatModels{
		Response:          chatModelResponse,
		ResponseModelName: config.RespConfig.Model,
	}, nil
}

// BindToolsToResponseModel binds the booking tools to the response chat model
func (cm *ChatModels) BindToolsToResponseModel(ctx context.Context, tools []*schema.ToolInfo) error {
	err := cm.Response.BindTools(tools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}

	logx.Debug().Msg("Successfully bound tools to response model")
	return nil
}

// NewResponseChatModelNode creates a wrapper for the Response chat model to be used as a node
func NewResponseChatModelNode(chatModel *gemini.ChatModel) *gemini.ChatModel {
	return chatModel
}
