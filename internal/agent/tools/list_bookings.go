package tools

import (
	"context"
	"sort"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// List All Bookings Tool (administrative)
// ===================================

type ListAllBookingsInput struct{}

type BookingRecord struct {
	Doctor      string `json:"doctor"`
	Time        string `json:"time"`
	PatientName string `json:"patient_name"`
}

type ListAllBookingsOutput struct {
	Bookings []BookingRecord `json:"bookings"`
	Total    int             `json:"total"`
}

// ListAllBookings returns the full registry snapshot, sorted for stable
// output. Administrative read; it is never part of a turn's eligible set.
func (ts *Toolset) ListAllBookings(ctx context.Context, in *ListAllBookingsInput) (*ListAllBookingsOutput, error) {
	snap := ts.registry.Snapshot()

	records := make([]BookingRecord, 0, len(snap))
	for key, patient := range snap {
		records = append(records, BookingRecord{
			Doctor:      key.Doctor,
			Time:        key.Time,
			PatientName: patient,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Doctor != records[j].Doctor {
			return records[i].Doctor < records[j].Doctor
		}
		return records[i].Time < records[j].Time
	})

	return &ListAllBookingsOutput{Bookings: records, Total: len(records)}, nil
}

func (ts *Toolset) createListAllBookingsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolListAllBookings,
			Desc: "List every confirmed booking in the registry as (doctor, time, patient) records. Administrative inspection only.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		ts.ListAllBookings,
	)
}
