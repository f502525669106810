package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/parsers"
)

// ===================================
// Check Availability Tool
// ===================================

type CheckAvailabilityInput struct {
	Reason      string `json:"reason"`
	Time        string `json:"time"`
	PatientName string `json:"patient_name,omitempty"`
}

type CheckAvailabilityOutput struct {
	Status        string   `json:"status"`
	Doctor        string   `json:"doctor,omitempty"`
	CanonicalTime string   `json:"canonical_time,omitempty"`
	OfferedTimes  []string `json:"offered_times,omitempty"`
	FreeTimes     []string `json:"free_times,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// CheckAvailability normalizes the requested time, resolves the department
// and reports whether its first doctor is free at that time. Pure read; a
// busy slot reports only that it is taken, never who holds it.
func (ts *Toolset) CheckAvailability(ctx context.Context, in *CheckAvailabilityInput) (*CheckAvailabilityOutput, error) {
	dept, ok := ts.catalog.Resolve(in.Reason)
	if !ok {
		return &CheckAvailabilityOutput{
			Status:  StatusDepartmentNotFound,
			Message: "no department treats this reason",
		}, nil
	}

	canonical := parsers.NormalizeTime(in.Time)
	offered, _ := ts.catalog.CanonicalTimes(dept.Reason)
	if !contains(offered, canonical) {
		return &CheckAvailabilityOutput{
			Status:        StatusTimeNotOffered,
			CanonicalTime: canonical,
			OfferedTimes:  offered,
			Message:       "this time is not offered for " + dept.Reason,
		}, nil
	}

	doctor, _ := ts.catalog.FirstDoctor(dept.Reason)
	if ts.registry.IsBooked(doctor, canonical) {
		return &CheckAvailabilityOutput{
			Status:        StatusDoctorBusy,
			Doctor:        doctor,
			CanonicalTime: canonical,
			FreeTimes:     ts.freeTimesFor(doctor, offered),
			Message:       "the slot is already taken; pick one of the free times",
		}, nil
	}

	return &CheckAvailabilityOutput{
		Status:        StatusAvailable,
		Doctor:        doctor,
		CanonicalTime: canonical,
	}, nil
}

// freeTimesFor filters the offered canonical times down to those the doctor
// still has open.
func (ts *Toolset) freeTimesFor(doctor string, offered []string) []string {
	free := []string{}
	for _, t := range offered {
		if !ts.registry.IsBooked(doctor, t) {
			free = append(free, t)
		}
	}
	return free
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (ts *Toolset) createCheckAvailabilityTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCheckAvailability,
			Desc: "Check whether a specific appointment time is offered and still free for the department that treats the given reason. Always call this before finalize_booking.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"reason": {
					Type:     "string",
					Desc:     "Appointment reason, e.g. flu, checkup, fever.",
					Required: true,
				},
				"time": {
					Type:     "string",
					Desc:     "Requested time in any common form, e.g. 3, 3 PM, 15:00.",
					Required: true,
				},
				"patient_name": {
					Type: "string",
					Desc: "Name of the patient asking for the slot.",
				},
			}),
		},
		ts.CheckAvailability,
	)
}
