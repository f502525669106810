package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/parsers"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
)

// ===================================
// Finalize Booking Tool
// ===================================

type FinalizeBookingInput struct {
	PatientName string `json:"patient_name"`
	Doctor      string `json:"doctor"`
	Time        string `json:"time"`
	Reason      string `json:"reason,omitempty"`
}

type FinalizeBookingOutput struct {
	Status        string `json:"status"`
	Doctor        string `json:"doctor"`
	CanonicalTime string `json:"canonical_time"`
	PatientName   string `json:"patient_name,omitempty"`
	Occupant      string `json:"occupant,omitempty"`
	Message       string `json:"message"`
}

// FinalizeBooking writes the booking into the registry. This is the only
// capability with a side effect. Missing required arguments are a hard error
// rather than a tagged outcome: booking incomplete data must never succeed
// quietly.
func (ts *Toolset) FinalizeBooking(ctx context.Context, in *FinalizeBookingInput) (*FinalizeBookingOutput, error) {
	if in.PatientName == "" || in.Doctor == "" || in.Time == "" {
		return nil, fmt.Errorf("finalize_booking: patient_name, doctor and time are required")
	}

	canonical := parsers.NormalizeTime(in.Time)

	confirmation, err := ts.registry.Book(in.Doctor, canonical, in.PatientName)
	if err != nil {
		var conflict *registry.ConflictError
		if errors.As(err, &conflict) {
			logx.Warn().
				Str("doctor", in.Doctor).
				Str("time", canonical).
				Str("patient", in.PatientName).
				Msg("booking conflict")
			return &FinalizeBookingOutput{
				Status:        StatusConflict,
				Doctor:        in.Doctor,
				CanonicalTime: canonical,
				Occupant:      conflict.Occupant,
				Message:       msgConflict,
			}, nil
		}
		return nil, err
	}

	logx.Info().
		Str("doctor", confirmation.Doctor).
		Str("time", confirmation.Time).
		Str("patient", confirmation.Patient).
		Str("reason", in.Reason).
		Msg("booking confirmed")

	return &FinalizeBookingOutput{
		Status:        StatusConfirmed,
		Doctor:        confirmation.Doctor,
		CanonicalTime: confirmation.Time,
		PatientName:   confirmation.Patient,
		Message:       msgConfirmed,
	}, nil
}

func (ts *Toolset) createFinalizeBookingTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFinalizeBooking,
			Desc: "Finalize an appointment for a patient with a specific doctor and time. The only tool that writes state; call it exactly once per confirmed booking. Fails on a slot that is already taken without changing anything.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"patient_name": {
					Type:     "string",
					Desc:     "Patient name exactly as given in the conversation.",
					Required: true,
				},
				"doctor": {
					Type:     "string",
					Desc:     "Doctor name from check_availability or list_available_slots, e.g. Dr. Smith.",
					Required: true,
				},
				"time": {
					Type:     "string",
					Desc:     "Appointment time in any common form; it is normalized to HH:MM.",
					Required: true,
				},
				"reason": {
					Type: "string",
					Desc: "Appointment reason, e.g. flu, checkup, fever.",
				},
			}),
		},
		ts.FinalizeBooking,
	)
}
