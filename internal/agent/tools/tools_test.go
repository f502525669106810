package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/catalog"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
)

func newTestToolset() (*Toolset, *registry.Registry) {
	reg := registry.New()
	return NewToolset(catalog.Default(), reg), reg
}

func TestListAvailableSlotsAllDepartments(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.ListAvailableSlots(context.Background(), &ListAvailableSlotsInput{})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, out.Status)
	// flu: 2 doctors x 4 slots, checkup: 2 x 2, fever: 1 x 2
	assert.Equal(t, 14, out.Total)
	assert.Contains(t, out.Slots, AvailableSlot{Department: "flu", Doctor: "Dr. Smith", Time: "14:00"})
	assert.Contains(t, out.Slots, AvailableSlot{Department: "fever", Doctor: "Dr. Adams", Time: "16:00"})
}

func TestListAvailableSlotsFilterByReason(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.ListAvailableSlots(context.Background(), &ListAvailableSlotsInput{Reason: "checkup"})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, out.Status)
	assert.Equal(t, 4, out.Total)
	for _, s := range out.Slots {
		assert.Equal(t, "checkup", s.Department)
	}
}

func TestListAvailableSlotsExcludesBooked(t *testing.T) {
	ts, reg := newTestToolset()

	_, err := reg.Book("Dr. Adams", "16:00", "Bob")
	require.NoError(t, err)

	out, err := ts.ListAvailableSlots(context.Background(), &ListAvailableSlotsInput{Reason: "fever"})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, out.Status)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "17:00", out.Slots[0].Time)
}

func TestListAvailableSlotsUnknownReason(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.ListAvailableSlots(context.Background(), &ListAvailableSlotsInput{Reason: "dermatology"})
	require.NoError(t, err)

	assert.Equal(t, StatusDepartmentNotFound, out.Status)
	assert.Empty(t, out.Slots)
}

func TestListAvailableSlotsNothingFree(t *testing.T) {
	reg := registry.New()
	ts := NewToolset(catalog.New([]model.Department{
		{Reason: "flu", Doctors: []string{"Dr. A"}, Slots: []string{"10:00"}},
	}), reg)

	_, err := reg.Book("Dr. A", "10:00", "Bob")
	require.NoError(t, err)

	out, err := ts.ListAvailableSlots(context.Background(), &ListAvailableSlotsInput{})
	require.NoError(t, err)

	assert.Equal(t, StatusNothingFree, out.Status)
	assert.Equal(t, "No available slots. Please call support.", out.Message)
	assert.Empty(t, out.Slots)
}

func TestCheckAvailabilityFreeSlot(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.CheckAvailability(context.Background(), &CheckAvailabilityInput{Reason: "flu", Time: "3 PM"})
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, out.Status)
	assert.Equal(t, "Dr. Smith", out.Doctor)
	assert.Equal(t, "15:00", out.CanonicalTime)
}

func TestCheckAvailabilityTimeNotOffered(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.CheckAvailability(context.Background(), &CheckAvailabilityInput{Reason: "flu", Time: "1 PM"})
	require.NoError(t, err)

	assert.Equal(t, StatusTimeNotOffered, out.Status)
	assert.Equal(t, "13:00", out.CanonicalTime)
	assert.Equal(t, []string{"10:00", "11:00", "14:00", "15:00"}, out.OfferedTimes)
}

func TestCheckAvailabilityDoctorBusy(t *testing.T) {
	ts, reg := newTestToolset()

	_, err := reg.Book("Dr. Smith", "15:00", "Alice")
	require.NoError(t, err)

	out, err := ts.CheckAvailability(context.Background(), &CheckAvailabilityInput{Reason: "flu", Time: "15:00", PatientName: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, StatusDoctorBusy, out.Status)
	assert.Equal(t, "Dr. Smith", out.Doctor)
	assert.Equal(t, []string{"10:00", "11:00", "14:00"}, out.FreeTimes)
	// Presence only: who holds the slot is never disclosed here.
	assert.NotContains(t, out.Message, "Alice")
}

func TestCheckAvailabilityUnknownReason(t *testing.T) {
	ts, _ := newTestToolset()

	out, err := ts.CheckAvailability(context.Background(), &CheckAvailabilityInput{Reason: "dentist", Time: "10:00"})
	require.NoError(t, err)

	assert.Equal(t, StatusDepartmentNotFound, out.Status)
}

func TestFinalizeBookingConfirms(t *testing.T) {
	ts, reg := newTestToolset()

	out, err := ts.FinalizeBooking(context.Background(), &FinalizeBookingInput{
		PatientName: "Bob",
		Doctor:      "Dr. Smith",
		Time:        "3 PM",
		Reason:      "flu",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, out.Status)
	assert.Equal(t, "15:00", out.CanonicalTime)
	assert.Equal(t, "Booking confirmed!", out.Message)
	assert.True(t, reg.IsBooked("Dr. Smith", "15:00"))
}

func TestFinalizeBookingConflict(t *testing.T) {
	ts, reg := newTestToolset()

	_, err := reg.Book("Dr. Smith", "15:00", "Alice")
	require.NoError(t, err)

	out, err := ts.FinalizeBooking(context.Background(), &FinalizeBookingInput{
		PatientName: "Bob",
		Doctor:      "Dr. Smith",
		Time:        "15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConflict, out.Status)
	assert.Equal(t, "Alice", out.Occupant)
	assert.Equal(t, "Conflict! Please choose another time.", out.Message)

	// The original booking survives.
	snap := reg.Snapshot()
	assert.Equal(t, "Alice", snap[model.BookingKey{Doctor: "Dr. Smith", Time: "15:00"}])
}

func TestFinalizeBookingMissingFieldsHardError(t *testing.T) {
	ts, reg := newTestToolset()

	for _, in := range []*FinalizeBookingInput{
		{Doctor: "Dr. Smith", Time: "15:00"},
		{PatientName: "Bob", Time: "15:00"},
		{PatientName: "Bob", Doctor: "Dr. Smith"},
	} {
		out, err := ts.FinalizeBooking(context.Background(), in)
		assert.Error(t, err)
		assert.Nil(t, out)
	}
	assert.Equal(t, 0, reg.Len())
}

func TestListAllBookingsSorted(t *testing.T) {
	ts, reg := newTestToolset()

	_, err := reg.Book("Dr. Smith", "15:00", "Bob")
	require.NoError(t, err)
	_, err = reg.Book("Dr. Lee", "09:00", "Carol")
	require.NoError(t, err)
	_, err = reg.Book("Dr. Smith", "10:00", "Alice")
	require.NoError(t, err)

	out, err := ts.ListAllBookings(context.Background(), &ListAllBookingsInput{})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Total)
	assert.Equal(t, []BookingRecord{
		{Doctor: "Dr. Lee", Time: "09:00", PatientName: "Carol"},
		{Doctor: "Dr. Smith", Time: "10:00", PatientName: "Alice"},
		{Doctor: "Dr. Smith", Time: "15:00", PatientName: "Bob"},
	}, out.Bookings)
}

func TestGetBookingToolsExposesClosedSet(t *testing.T) {
	ts, _ := newTestToolset()
	ctx := context.Background()

	infos, err := GetToolInfos(ctx, GetBookingTools(ts))
	require.NoError(t, err)
	require.Len(t, infos, 4)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{
		ToolListAvailableSlots,
		ToolCheckAvailability,
		ToolFinalizeBooking,
		ToolListAllBookings,
	}, names)
}
