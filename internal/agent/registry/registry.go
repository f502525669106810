package registry

import (
	"fmt"
	"sync"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

// ErrMissingField is returned when Book is called with an empty doctor, time
// or patient name. Incomplete bookings must fail loudly instead of being
// silently recorded.
var ErrMissingField = fmt.Errorf("booking requires doctor, time and patient name")

// ConflictError reports that the requested doctor-time pair is already taken.
// The existing booking is left untouched.
type ConflictError struct {
	Key      model.BookingKey
	Occupant string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s already booked", e.Key)
}

// Confirmation is the payload of a successful booking.
type Confirmation struct {
	Doctor  string `json:"doctor"`
	Time    string `json:"time"`
	Patient string `json:"patient"`
}

// Registry is the process-wide source of truth for confirmed bookings. It is
// shared across simultaneous conversations, so every operation takes the
// registry lock; Book holds the write lock across its check-then-insert so a
// key can never be claimed twice.
type Registry struct {
	mu       sync.RWMutex
	bookings map[model.BookingKey]string
}

func New() *Registry {
	return &Registry{bookings: make(map[model.BookingKey]string)}
}

// IsBooked reports whether the doctor already has a patient at the canonical time.
func (r *Registry) IsBooked(doctor, canonicalTime string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bookings[model.BookingKey{Doctor: doctor, Time: canonicalTime}]
	return ok
}

// Book atomically claims the (doctor, canonicalTime) key for the patient.
// A *ConflictError carrying the current occupant is returned when the key is
// already present; the stored booking is never overwritten.
func (r *Registry) Book(doctor, canonicalTime, patient string) (Confirmation, error) {
	if doctor == "" || canonicalTime == "" || patient == "" {
		return Confirmation{}, ErrMissingField
	}

	key := model.BookingKey{Doctor: doctor, Time: canonicalTime}

	r.mu.Lock()
	defer r.mu.Unlock()

	if occupant, ok := r.bookings[key]; ok {
		return Confirmation{}, &ConflictError{Key: key, Occupant: occupant}
	}
	r.bookings[key] = patient

	return Confirmation{Doctor: doctor, Time: canonicalTime, Patient: patient}, nil
}

// Snapshot returns a copy of all confirmed bookings for administrative
// inspection. The copy is detached from the live map, so later bookings do
// not leak into a snapshot already handed out.
func (r *Registry) Snapshot() map[model.BookingKey]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[model.BookingKey]string, len(r.bookings))
	for k, v := range r.bookings {
		snap[k] = v
	}
	return snap
}

// Len returns the number of confirmed bookings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
