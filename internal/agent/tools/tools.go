package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/catalog"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
)

// Tool names form the closed capability set exposed to the language
// collaborator. The orchestrator only ever marks a subset of these eligible
// per turn.
const (
	ToolListAvailableSlots = "list_available_slots"
	ToolCheckAvailability  = "check_availability"
	ToolFinalizeBooking    = "finalize_booking"
	ToolListAllBookings    = "list_all_bookings"
)

// Tagged outcome statuses. Capabilities never abort the conversation; every
// result is one of these, folded back into the conversation by the caller.
const (
	StatusOK                 = "ok"
	StatusNothingFree        = "nothing_free"
	StatusAvailable          = "available"
	StatusDoctorBusy         = "doctor_busy"
	StatusTimeNotOffered     = "time_not_offered"
	StatusDepartmentNotFound = "department_not_found"
	StatusConfirmed          = "confirmed"
	StatusConflict           = "conflict"
)

// Confirmation phrasing kept stable because downstream evaluation keys on it.
const (
	msgConfirmed   = "Booking confirmed!"
	msgConflict    = "Conflict! Please choose another time."
	msgNothingFree = "No available slots. Please call support."
)

// Toolset binds the four booking capabilities to an explicitly injected
// catalog and registry. Nothing here is a process-wide singleton; every
// capability operates on the stores it was constructed with.
type Toolset struct {
	catalog  *catalog.Catalog
	registry *registry.Registry
}

func NewToolset(c *catalog.Catalog, r *registry.Registry) *Toolset {
	return &Toolset{catalog: c, registry: r}
}

// GetBookingTools returns the closed set of invocable booking tools.
func GetBookingTools(ts *Toolset) []tool.BaseTool {
	return []tool.BaseTool{
		ts.createListAvailableSlotsTool(),
		ts.createCheckAvailabilityTool(),
		ts.createFinalizeBookingTool(),
		ts.createListAllBookingsTool(),
	}
}

// GetToolInfos collects the ToolInfo of every tool for model binding.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
