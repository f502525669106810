package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/parsers"
)

// ===================================
// List Available Slots Tool
// ===================================

type ListAvailableSlotsInput struct {
	Reason string `json:"reason,omitempty"`
}

type AvailableSlot struct {
	Department string `json:"department"`
	Doctor     string `json:"doctor"`
	Time       string `json:"time"`
}

type ListAvailableSlotsOutput struct {
	Status  string          `json:"status"`
	Slots   []AvailableSlot `json:"slots"`
	Total   int             `json:"total"`
	Message string          `json:"message,omitempty"`
}

// ListAvailableSlots enumerates every (department, doctor, time) triple that
// is not yet present in the booking registry, optionally filtered by reason.
// Pure read.
func (ts *Toolset) ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsInput) (*ListAvailableSlotsOutput, error) {
	departments := ts.catalog.Departments()
	if in.Reason != "" {
		dept, ok := ts.catalog.Resolve(in.Reason)
		if !ok {
			return &ListAvailableSlotsOutput{
				Status:  StatusDepartmentNotFound,
				Slots:   []AvailableSlot{},
				Message: "no department treats this reason",
			}, nil
		}
		departments = []model.Department{dept}
	}

	slots := []AvailableSlot{}
	for _, dept := range departments {
		for _, doctor := range dept.Doctors {
			for _, raw := range dept.Slots {
				canonical := parsers.NormalizeTime(raw)
				if ts.registry.IsBooked(doctor, canonical) {
					continue
				}
				slots = append(slots, AvailableSlot{
					Department: dept.Reason,
					Doctor:     doctor,
					Time:       canonical,
				})
			}
		}
	}

	if len(slots) == 0 {
		return &ListAvailableSlotsOutput{
			Status:  StatusNothingFree,
			Slots:   slots,
			Message: msgNothingFree,
		}, nil
	}

	return &ListAvailableSlotsOutput{Status: StatusOK, Slots: slots, Total: len(slots)}, nil
}

func (ts *Toolset) createListAvailableSlotsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolListAvailableSlots,
			Desc: "List every open appointment slot as (department, doctor, time) triples, excluding slots that are already booked. Optionally filter by appointment reason. Use this tool whenever the patient has not yet picked a valid time.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"reason": {
					Type: "string",
					Desc: "Optional appointment reason filter, e.g. flu, checkup, fever.",
				},
			}),
		},
		ts.ListAvailableSlots,
	)
}
