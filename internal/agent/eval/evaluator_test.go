package eval

import (
	"context"
	"fmt"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	content string
	err     error
	lastIn  []*schema.Message
}

func (s *stubModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.content, nil), nil
}

func (s *stubModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("stream not supported")
}

func TestSlotConflictScore(t *testing.T) {
	booked := func(slot string) bool { return slot == "Dr. Smith@15:00" }

	tests := []struct {
		name    string
		outcome BookingOutcome
		want    float64
	}{
		{
			name:    "free slot confirmed",
			outcome: BookingOutcome{DoctorSlot: "Dr. Lee@09:00", Confirmation: "Booking confirmed!"},
			want:    1,
		},
		{
			name:    "taken slot reported as conflict",
			outcome: BookingOutcome{DoctorSlot: "Dr. Smith@15:00", Confirmation: "Conflict! Please choose another time."},
			want:    1,
		},
		{
			name:    "taken slot wrongly confirmed",
			outcome: BookingOutcome{DoctorSlot: "Dr. Smith@15:00", Confirmation: "Booking confirmed!"},
			want:    0,
		},
		{
			name:    "free slot wrongly refused",
			outcome: BookingOutcome{DoctorSlot: "Dr. Lee@09:00", Confirmation: "Conflict! Please choose another time."},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := SlotConflictScore(tt.outcome, booked)
			assert.Equal(t, "slot_conflict_handling", score.Key)
			assert.Equal(t, tt.want, score.Score)
		})
	}
}

func TestCorrectnessJudgeParsesVerdict(t *testing.T) {
	stub := &stubModel{content: `{"correctness": true, "score": 0.9}`}
	judge := NewCorrectnessJudge(stub)

	score, err := judge.Evaluate(context.Background(),
		PatientInfo{Name: "Bob", Age: 40, Reason: "flu"},
		BookingOutcome{DoctorSlot: "Dr. Smith@15:00", Confirmation: "Booking confirmed!"},
		BookingOutcome{DoctorSlot: "Dr. Smith@15:00", Confirmation: "Booking confirmed!"},
	)
	require.NoError(t, err)

	assert.Equal(t, "correctness", score.Key)
	assert.Equal(t, 0.9, score.Score)

	// The judge prompt carries both outcomes.
	require.Len(t, stub.lastIn, 1)
	assert.Contains(t, stub.lastIn[0].Content, "Dr. Smith@15:00")
	assert.Contains(t, stub.lastIn[0].Content, "Bob")
}

func TestCorrectnessJudgeStripsMarkdownFence(t *testing.T) {
	stub := &stubModel{content: "```json\n{\"correctness\": false, \"score\": 0.2}\n```"}
	judge := NewCorrectnessJudge(stub)

	score, err := judge.Evaluate(context.Background(), PatientInfo{}, BookingOutcome{}, BookingOutcome{})
	require.NoError(t, err)
	assert.Equal(t, 0.2, score.Score)
}

func TestCorrectnessJudgeUnparseableVerdict(t *testing.T) {
	stub := &stubModel{content: "I think it looks fine"}
	judge := NewCorrectnessJudge(stub)

	_, err := judge.Evaluate(context.Background(), PatientInfo{}, BookingOutcome{}, BookingOutcome{})
	assert.Error(t, err)
}

func TestCorrectnessJudgeModelError(t *testing.T) {
	stub := &stubModel{err: fmt.Errorf("quota exceeded")}
	judge := NewCorrectnessJudge(stub)

	_, err := judge.Evaluate(context.Background(), PatientInfo{}, BookingOutcome{}, BookingOutcome{})
	assert.ErrorContains(t, err, "quota exceeded")
}
