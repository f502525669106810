package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

func TestRenderBookingSystem(t *testing.T) {
	rendered, err := RenderBookingSystem(context.Background(),
		model.BookingPromptConfig{HospitalName: "City General Hospital"},
		model.TurnPlan{
			Stage:         model.StageReadyToAct,
			EligibleTools: []string{"check_availability", "finalize_booking"},
			Instruction:   "Act for patient Bob.",
		},
	)
	require.NoError(t, err)

	assert.Contains(t, rendered, "City General Hospital")
	assert.Contains(t, rendered, "ready_to_act")
	assert.Contains(t, rendered, "check_availability, finalize_booking")
	assert.Contains(t, rendered, "Act for patient Bob.")
}

func TestRenderBookingSystemNoEligibleTools(t *testing.T) {
	rendered, err := RenderBookingSystem(context.Background(),
		model.BookingPromptConfig{HospitalName: "City General Hospital"},
		model.TurnPlan{
			Stage:       model.StageNeedName,
			Instruction: "Ask for the patient's name.",
		},
	)
	require.NoError(t, err)

	assert.Contains(t, rendered, "Eligible tools this turn: none")
}
