package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamensam88/vitrio/internal/booking"
)

func TestDaySlots(t *testing.T) {
	slots := DaySlots()
	require.Len(t, slots, SlotsPerDay)

	assert.Equal(t, SlotTime{Hour: 8, Minute: 0}, slots[0])
	assert.Equal(t, SlotTime{Hour: 8, Minute: 30}, slots[1])

	// 23 half-hour slots starting at 08:00 puts the last start at 19:00.
	assert.Equal(t, SlotTime{Hour: 19, Minute: 0}, slots[len(slots)-1])

	// Consecutive slots are exactly half an hour apart.
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].At(day).Sub(slots[i-1].At(day)))
	}
}

func TestClassify(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	nineAM := SlotTime{Hour: 9, Minute: 0}

	availabilities := []Availability{
		{ID: 1, GarageID: "g101", StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}
	appointments := []booking.Appointment{
		{ID: 5, GarageID: "g101", Date: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Status: booking.StatusConfirmed},
	}

	testCases := []struct {
		name           string
		slot           SlotTime
		availabilities []Availability
		appointments   []booking.Appointment
		expected       SlotStatus
	}{
		{name: "no records means empty", slot: nineAM, expected: SlotEmpty},
		{name: "availability alone", slot: nineAM, availabilities: availabilities, expected: SlotAvailable},
		{name: "appointment alone", slot: nineAM, appointments: appointments, expected: SlotBooked},
		{name: "appointment beats availability", slot: nineAM, availabilities: availabilities, appointments: appointments, expected: SlotBooked},
		{name: "adjacent slot stays empty", slot: SlotTime{Hour: 9, Minute: 30}, availabilities: availabilities, appointments: appointments, expected: SlotEmpty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := Classify(day, tc.slot, tc.availabilities, tc.appointments)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestClassifyMatchesExactMinute(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// An appointment at 09:15 does not snap to either surrounding slot.
	appointments := []booking.Appointment{
		{ID: 1, Date: time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)},
	}
	assert.Equal(t, SlotEmpty, Classify(day, SlotTime{Hour: 9, Minute: 0}, nil, appointments))
	assert.Equal(t, SlotEmpty, Classify(day, SlotTime{Hour: 9, Minute: 30}, nil, appointments))
}

func TestClassifyNormalizesTimezone(t *testing.T) {
	paris := time.FixedZone("CET", 1*60*60)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, paris)

	// 08:00 UTC is 09:00 in the grid's zone.
	availabilities := []Availability{
		{ID: 1, StartTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, SlotAvailable, Classify(day, SlotTime{Hour: 9, Minute: 0}, availabilities, nil))
	assert.Equal(t, SlotEmpty, Classify(day, SlotTime{Hour: 8, Minute: 0}, availabilities, nil))
}

func TestBookableByCustomer(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		slot     SlotTime
		status   SlotStatus
		expected bool
	}{
		{name: "future available slot", slot: SlotTime{Hour: 14, Minute: 0}, status: SlotAvailable, expected: true},
		{name: "past available slot", slot: SlotTime{Hour: 9, Minute: 0}, status: SlotAvailable, expected: false},
		{name: "slot at current instant", slot: SlotTime{Hour: 10, Minute: 0}, status: SlotAvailable, expected: false},
		{name: "future booked slot", slot: SlotTime{Hour: 14, Minute: 0}, status: SlotBooked, expected: false},
		{name: "future empty slot", slot: SlotTime{Hour: 14, Minute: 0}, status: SlotEmpty, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BookableByCustomer(day, tc.slot, tc.status, now))
		})
	}
}
