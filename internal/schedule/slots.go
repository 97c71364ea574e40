package schedule

import (
	"time"

	"github.com/yamensam88/vitrio/internal/booking"
)

// SlotStatus classifies one cell of the booking calendar.
type SlotStatus string

const (
	SlotEmpty     SlotStatus = "EMPTY"
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

// The calendar is a fixed grid of 23 half-hour slots, starting 08:00 through
// 19:00.
const (
	openingHour = 8
	slotMinutes = 30
	SlotsPerDay = 23
)

// Availability is a partner-declared open slot. A slot with no availability
// record simply is not offered; there is no separate "closed" state.
type Availability struct {
	ID        int       `json:"id"`
	GarageID  string    `json:"garage_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"is_available"`
}

// SlotTime is a position in the daily grid.
type SlotTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DaySlots returns the 23 grid positions of a day, 08:00 through 19:00.
func DaySlots() []SlotTime {
	slots := make([]SlotTime, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		slots = append(slots, SlotTime{
			Hour:   openingHour + i/2,
			Minute: (i % 2) * slotMinutes,
		})
	}
	return slots
}

// At anchors a grid position to a calendar day.
func (s SlotTime) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, day.Location())
}

// Classify resolves one (day, time) cell. A matching appointment always wins
// over a matching availability record; matching is exact on calendar day, hour
// and minute, never nearest-slot.
func Classify(day time.Time, slot SlotTime, availabilities []Availability, appointments []booking.Appointment) SlotStatus {
	for _, a := range appointments {
		if matchesSlot(a.Date, day, slot) {
			return SlotBooked
		}
	}
	for _, av := range availabilities {
		if matchesSlot(av.StartTime, day, slot) {
			return SlotAvailable
		}
	}
	return SlotEmpty
}

// BookableByCustomer reports whether a customer may book the cell. Partners
// are not subject to this check; they keep seeing past bookings.
func BookableByCustomer(day time.Time, slot SlotTime, status SlotStatus, now time.Time) bool {
	return status == SlotAvailable && slot.At(day).After(now)
}

func matchesSlot(t, day time.Time, slot SlotTime) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && t.Hour() == slot.Hour && t.Minute() == slot.Minute
}
