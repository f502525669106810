package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

//go:embed template/booking_prompt.txt
var bookingSystemPrompt string

// RenderBookingSystem renders the per-turn system prompt for the response
// model via the Eino prompt component (so prompt callbacks fire). The
// deterministic instruction comes from the orchestrator; this only wraps it
// with the assistant persona and the tool rules.
func RenderBookingSystem(ctx context.Context, config model.BookingPromptConfig, plan model.TurnPlan) (string, error) {
	eligible := "none"
	if len(plan.EligibleTools) > 0 {
		eligible = strings.Join(plan.EligibleTools, ", ")
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(bookingSystemPrompt),
	)
	vars := map[string]any{
		"HospitalName":  config.HospitalName,
		"Stage":         string(plan.Stage),
		"EligibleTools": eligible,
		"Instruction":   plan.Instruction,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("booking prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("booking prompt render: empty result")
	}
	return msgs[0].Content, nil
}
