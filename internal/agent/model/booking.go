package model

import "fmt"

// Department groups the doctors and offered time slots for one appointment
// reason (e.g. "flu", "checkup"). Slot strings are raw as configured and must
// be normalized before any comparison against a registry key.
type Department struct {
	Reason  string   `json:"reason"`
	Doctors []string `json:"doctors"`
	Slots   []string `json:"slots"`
}

// BookingKey identifies a unique appointment slot. Time must already be in
// canonical HH:MM form.
type BookingKey struct {
	Doctor string `json:"doctor"`
	Time   string `json:"time"`
}

func (k BookingKey) String() string {
	return fmt.Sprintf("%s@%s", k.Doctor, k.Time)
}

// Intent holds the structured fields derived from the accumulated
// conversation text on a given turn. Every field is optional; an empty string
// means the patient has not provided it yet. Intents are recomputed from the
// full history each turn and never persisted.
type Intent struct {
	PatientName   string `json:"patient_name,omitempty"`
	Reason        string `json:"reason,omitempty"`
	RawTime       string `json:"raw_time,omitempty"`
	CanonicalTime string `json:"canonical_time,omitempty"`
}

func (i Intent) HasName() bool {
	return i.PatientName != ""
}

func (i Intent) HasReason() bool {
	return i.Reason != ""
}

func (i Intent) HasTime() bool {
	return i.RawTime != ""
}

// Stage is the conversation stage derived each turn from the current Intent
// and the registry. There is no stored "current stage" field anywhere; the
// stage is always recomputed from the accumulated text.
type Stage string

const (
	// StageNeedName means the patient's name is still unknown. No booking
	// capability is exposed; the collaborator must ask for the name.
	StageNeedName Stage = "need_name"
	// StageNeedValidTime means the name is known but the requested time is
	// absent or not offered for the extracted reason.
	StageNeedValidTime Stage = "need_valid_time"
	// StageReadyToAct means name, reason and a valid offered time are all
	// known; availability check and finalize become eligible.
	StageReadyToAct Stage = "ready_to_act"
	// StageBooked means a finalize already succeeded for this patient,
	// reason and time. No capability is exposed for the request.
	StageBooked Stage = "booked"
)

// TurnPlan is the orchestrator's output for one turn: the derived stage, the
// intent it was derived from, the capability subset the language collaborator
// may invoke this turn, and the instruction text steering it.
type TurnPlan struct {
	Stage         Stage    `json:"stage"`
	Intent        Intent   `json:"intent"`
	EligibleTools []string `json:"eligible_tools"`
	Instruction   string   `json:"instruction"`
}

// Eligible reports whether the named tool may be invoked under this plan.
func (p TurnPlan) Eligible(tool string) bool {
	for _, t := range p.EligibleTools {
		if t == tool {
			return true
		}
	}
	return false
}
