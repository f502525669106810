package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"
)

// PatientInfo is the evaluated scenario's input side.
type PatientInfo struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Reason string `json:"reason"`
}

// BookingOutcome is what an agent run produced (or what the reference expects).
type BookingOutcome struct {
	DoctorSlot   string `json:"doctor_slot"`
	Confirmation string `json:"confirmation"`
}

// Score is a single keyed evaluation result in [0, 1].
type Score struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// SlotConflictScore checks deterministically that the agent handled slot
// conflicts the right way around: a taken slot must produce a conflict
// message, a free slot a confirmation. isBooked reports whether the slot was
// already occupied when the agent answered.
func SlotConflictScore(outcome BookingOutcome, isBooked func(slot string) bool) Score {
	var correct bool
	if isBooked(outcome.DoctorSlot) {
		correct = strings.Contains(outcome.Confirmation, "Conflict")
	} else {
		correct = strings.Contains(outcome.Confirmation, "Booking confirmed")
	}

	s := Score{Key: "slot_conflict_handling"}
	if correct {
		s.Score = 1
	}
	return s
}

// CorrectnessJudge scores a predicted outcome against a reference with an
// LLM-as-judge. The model is injected behind Eino's BaseChatModel interface
// so tests can stub it.
type CorrectnessJudge struct {
	model einomodel.BaseChatModel
}

func NewCorrectnessJudge(m einomodel.BaseChatModel) *CorrectnessJudge {
	return &CorrectnessJudge{model: m}
}

const judgePromptFormat = `You are a strict JSON evaluator for a hospital booking system.

Return ONLY valid JSON.
Do NOT include markdown, text, or explanation.

Patient info:
Name: %s
Age: %d
Reason: %s

Predicted output:
Doctor slot: %s
Confirmation: %s

Reference output:
Doctor slot: %s
Confirmation: %s

Rules:
1. correctness: true if conflicts are correctly handled (e.g., if slot is taken, agent asks for another time).
2. score: float 0-1 considering exact match and conflict handling.

Return ONLY JSON with keys: correctness,score`

type judgeVerdict struct {
	Correctness bool    `json:"correctness"`
	Score       float64 `json:"score"`
}

// Evaluate asks the judge model to compare prediction and reference and
// returns the resulting correctness score.
func (j *CorrectnessJudge) Evaluate(ctx context.Context, patient PatientInfo, predicted, reference BookingOutcome) (Score, error) {
	prompt := fmt.Sprintf(judgePromptFormat,
		patient.Name, patient.Age, patient.Reason,
		predicted.DoctorSlot, predicted.Confirmation,
		reference.DoctorSlot, reference.Confirmation,
	)

	out, err := j.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return Score{}, fmt.Errorf("judge model: %w", err)
	}
	if out == nil {
		return Score{}, fmt.Errorf("judge model returned nil message")
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(stripFences(out.Content)), &verdict); err != nil {
		logx.Warn().Str("content", out.Content).Err(err).Msg("judge returned unparseable verdict")
		return Score{}, fmt.Errorf("parse judge verdict: %w", err)
	}

	return Score{Key: "correctness", Score: verdict.Score}, nil
}

// stripFences removes a surrounding markdown code fence that some models emit
// despite the JSON-only instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
