package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph/conversations"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph/prompts"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/orchestrator"
)

// NewPlannerPreHandler creates the pre-handler for the Planner node
func NewPlannerPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		if s.ConversationID == "" {
			s.ConversationID = in.ConversationID
		}
		// Reset per-query state
		s.Plan = nil
		s.History = nil
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		return in, nil
	}
}

// NewPlannerNode creates the Planner node. It records the patient message,
// re-derives the turn plan from the full accumulated patient text and builds
// the model messages with the plan's instruction as system prompt.
func NewPlannerNode(
	mm *conversations.MessagesManager,
	orch *orchestrator.Orchestrator,
	promptCfg *model.BookingPromptConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		if err := mm.AppendUserMessage(ctx, input.ConversationID, input.Query); err != nil {
			return nil, fmt.Errorf("error saving patient message: %w", err)
		}

		patientText, err := mm.PatientText(ctx, input.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("error loading patient text: %w", err)
		}

		plan := orch.PlanTurn(patientText)

		err = compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			state.Plan = &plan
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store turn plan: %w", err)
		}

		logx.Debug().
			Str("conversation_id", input.ConversationID).
			Str("stage", string(plan.Stage)).
			Strs("eligible_tools", plan.EligibleTools).
			Msg("Turn plan derived")

		systemPrompt, err := prompts.RenderBookingSystem(ctx, *promptCfg, plan)
		if err != nil {
			return nil, fmt.Errorf("render booking system prompt: %w", err)
		}

		return mm.BuildModelMessages(ctx, input.ConversationID, systemPrompt)
	})
}

// NewResponseChatModelPreHandler creates the pre-handler for ResponseChatModel node
func NewResponseChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		// Ensure tool results carry a tool_call_id; some providers omit it.
		if len(in) > 0 {
			last := in[len(in)-1]
			if last != nil && last.Role == schema.Tool && strings.TrimSpace(last.ToolCallID) == "" {
				for i := len(state.History) - 1; i >= 0; i-- {
					msg := state.History[i]
					if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
						continue
					}
					if id := strings.TrimSpace(msg.ToolCalls[0].ID); id != "" {
						last.ToolCallID = id
					}
					break
				}
			}
		}

		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			maxToolCalls = normalizeMaxToolCalls(maxToolCalls)
			wrapUp := &schema.Message{
				Role: schema.System,
				Content: fmt.Sprintf(
					"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
						"Reply to the patient with the booking information you already gathered.",
					maxToolCalls,
				),
			}
			state.History = append(state.History, wrapUp)
		}

		return state.History, nil
	}
}

// NewResponseChatModelPostHandler creates the post-handler for ResponseChatModel node
func NewResponseChatModelPostHandler(
	mm *conversations.MessagesManager,
	modelName string,
) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		// Compute usage cost if available
		if model.CostEnabled() && out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			pricing := model.ResolvePricing(modelName)
			inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
			logx.Debug().
				Str("conversation_id", state.ConversationID).
				Str("node", NodeResponseChatModel).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", totalC).
				Msg("LLM usage")
		}

		if out == nil {
			return nil, fmt.Errorf("response model returned nil message")
		}

		// Normalize tool calls: some providers may omit tool_call IDs.
		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)

		// Save only a final assistant message (no further tool calls), or a
		// content response produced after the tool-call limit was reached.
		if out.Role == schema.Assistant && (len(out.ToolCalls) == 0 || state.ToolCallLimitReached) && strings.TrimSpace(out.Content) != "" {
			if err := mm.SaveResponse(ctx, state.ConversationID, out.Content); err != nil {
				logx.Error().
					Str("conversation_id", state.ConversationID).
					Err(err).
					Msg("Error saving assistant response")
			}
		}

		return out, nil
	}
}

// NewToolExecutorCondition creates the condition function for tool execution
// routing. Only tool calls from the plan's eligible subset count; a message
// carrying nothing but ineligible calls routes straight to END.
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		var plan *model.TurnPlan
		compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			plan = state.Plan
			return nil
		})

		if limitReached {
			logx.Debug().Msg("Tool limit reached previously - routing to end")
			return compose.END, nil
		}

		eligible := eligibleCalls(input, plan)
		if len(eligible) > 0 {
			logx.Debug().Int("tool_count", len(eligible)).Msg("Routing to ToolExecutor")
			return NodeToolExecutor, nil
		}

		if len(input.ToolCalls) > 0 {
			logx.Warn().Int("dropped", len(input.ToolCalls)).Msg("Only ineligible tool calls - routing to end")
		}
		return compose.END, nil
	}
}

// NewToolExecutorPreHandler creates the pre-handler for ToolExecutor node. It
// enforces the eligible capability subset: calls to tools outside the current
// plan are dropped before execution, so the collaborator can never run an
// ineligible capability.
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		exceeded := incrementToolCallAndCheck(state, maxToolCalls)

		logx.Debug().
			Int("tool_call_count", state.ToolCallCount).
			Str("conversation_id", state.ConversationID).
			Msg("Tool execution attempt")

		if exceeded {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", normalizeMaxToolCalls(maxToolCalls)).
				Str("conversation_id", state.ConversationID).
				Msg("Tool call limit exceeded - flagging and continuing")
		}

		// The eligibility gate holds on every path, including the
		// limit-exceeded one: a call outside the current plan never executes.
		kept := eligibleCalls(in, state.Plan)
		if len(kept) != len(in.ToolCalls) {
			logx.Warn().
				Int("dropped", len(in.ToolCalls)-len(kept)).
				Str("conversation_id", state.ConversationID).
				Msg("Dropped ineligible tool calls")
			filtered := *in
			filtered.ToolCalls = kept
			return &filtered, nil
		}

		return in, nil
	}
}

// eligibleCalls returns the subset of the message's tool calls the current
// plan allows. A nil plan allows nothing.
func eligibleCalls(msg *schema.Message, plan *model.TurnPlan) []schema.ToolCall {
	if msg == nil || plan == nil {
		return nil
	}
	kept := make([]schema.ToolCall, 0, len(msg.ToolCalls))
	for _, call := range msg.ToolCalls {
		if plan.Eligible(call.Function.Name) {
			kept = append(kept, call)
		}
	}
	return kept
}
