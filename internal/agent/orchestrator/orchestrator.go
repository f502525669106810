package orchestrator

import (
	"fmt"
	"strings"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/catalog"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/parsers"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/tools"
)

// Orchestrator derives, for each turn, which capability subset the language
// collaborator may use and the instruction steering it. The stage is
// recomputed from scratch out of the accumulated patient text and the current
// registry; nothing is stored between turns, so a missed update can never
// leave a stale stage behind.
type Orchestrator struct {
	catalog  *catalog.Catalog
	registry *registry.Registry
}

func New(c *catalog.Catalog, r *registry.Registry) *Orchestrator {
	return &Orchestrator{catalog: c, registry: r}
}

// PlanTurn is the turn-processing entry point: it extracts the intent from
// the accumulated patient-side text and maps it, together with the registry
// state, onto a stage with its eligible tools and instruction.
func (o *Orchestrator) PlanTurn(historyText string) model.TurnPlan {
	intent := parsers.ExtractIntent(historyText, o.catalog.Reasons())

	switch {
	case !intent.HasName():
		return model.TurnPlan{
			Stage:       model.StageNeedName,
			Intent:      intent,
			Instruction: needNameInstruction(),
		}
	case o.alreadyBooked(intent):
		return model.TurnPlan{
			Stage:       model.StageBooked,
			Intent:      intent,
			Instruction: bookedInstruction(intent),
		}
	case !o.timeValid(intent):
		return model.TurnPlan{
			Stage:         model.StageNeedValidTime,
			Intent:        intent,
			EligibleTools: []string{tools.ToolListAvailableSlots},
			Instruction:   o.needValidTimeInstruction(intent),
		}
	default:
		return model.TurnPlan{
			Stage:         model.StageReadyToAct,
			Intent:        intent,
			EligibleTools: []string{tools.ToolCheckAvailability, tools.ToolFinalizeBooking},
			Instruction:   o.readyToActInstruction(intent),
		}
	}
}

// timeValid reports whether the intent carries a reason the catalog knows and
// a canonical time that department actually offers.
func (o *Orchestrator) timeValid(intent model.Intent) bool {
	if !intent.HasReason() || !intent.HasTime() {
		return false
	}
	return o.catalog.OffersTime(intent.Reason, intent.CanonicalTime)
}

// alreadyBooked reports whether some doctor of the intent's department is
// already booked at the intent's canonical time under the intent's patient
// name. That is the stateless Terminal signal: a finalize succeeded for
// exactly this request.
func (o *Orchestrator) alreadyBooked(intent model.Intent) bool {
	if !o.timeValid(intent) {
		return false
	}
	doctors, _, ok := o.catalog.SlotsFor(intent.Reason)
	if !ok {
		return false
	}
	snap := o.registry.Snapshot()
	for _, doctor := range doctors {
		occupant, ok := snap[model.BookingKey{Doctor: doctor, Time: intent.CanonicalTime}]
		if ok && strings.EqualFold(occupant, intent.PatientName) {
			return true
		}
	}
	return false
}

func needNameInstruction() string {
	return "The patient has not introduced themselves yet. Ask for the patient's name before anything else. Do not list slots, check availability or book anything on this turn."
}

func (o *Orchestrator) needValidTimeInstruction(intent model.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The patient is %s.", intent.PatientName)

	if intent.HasReason() {
		times, _ := o.catalog.CanonicalTimes(intent.Reason)
		fmt.Fprintf(&b, " They want a %s appointment", intent.Reason)
		if intent.HasTime() {
			fmt.Fprintf(&b, " at %q, which is not an offered time", intent.CanonicalTime)
		} else {
			b.WriteString(" but have not picked a time")
		}
		fmt.Fprintf(&b, ". Valid times for %s are: %s.", intent.Reason, strings.Join(times, ", "))
	} else {
		fmt.Fprintf(&b, " No known appointment reason was mentioned; the departments are: %s.", strings.Join(o.catalog.Reasons(), ", "))
	}

	fmt.Fprintf(&b, " Use %s to show what is free and ask the patient to pick one of the valid times.", tools.ToolListAvailableSlots)
	return b.String()
}

func (o *Orchestrator) readyToActInstruction(intent model.Intent) string {
	doctor, _ := o.catalog.FirstDoctor(intent.Reason)
	return fmt.Sprintf(
		"Act for patient %s: a %s appointment at %s. Everything needed is already known, so do not ask for it again. Call %s for reason %q at %q first; if the slot is free, call %s with patient_name %q, doctor %q and time %q.",
		intent.PatientName, intent.Reason, intent.CanonicalTime,
		tools.ToolCheckAvailability, intent.Reason, intent.CanonicalTime,
		tools.ToolFinalizeBooking, intent.PatientName, doctor, intent.CanonicalTime,
	)
}

func bookedInstruction(intent model.Intent) string {
	return fmt.Sprintf(
		"The booking for %s (%s at %s) is already confirmed. Do not book again and do not call any tool; confirm the appointment and answer follow-up questions only.",
		intent.PatientName, intent.Reason, intent.CanonicalTime,
	)
}
