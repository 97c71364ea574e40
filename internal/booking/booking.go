package booking

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("appointment not found")
	ErrUnknownStatus      = errors.New("unknown appointment status")
	ErrBackwardTransition = errors.New("appointment status cannot move backward")
)

// Appointment is the in-memory representation the state engine operates on.
// Persistence is the caller's concern; the engine only proposes transitions.
type Appointment struct {
	ID               int
	ClientName       string
	Email            string
	Phone            string
	Vehicle          string
	Date             time.Time
	GarageID         string
	Status           Status
	Amount           float64
	Offers           []string
	BillingTriggered bool
}

// BillingEvent is emitted at most once per appointment, the first time it
// reaches StatusConfirmed. The platform fee is flat, so the event carries the
// appointment amount for reporting only.
type BillingEvent struct {
	AppointmentID int
	Amount        float64
}

// Advance moves an appointment one step forward in its lifecycle:
// Pending -> Confirmed -> Completed. Calling Advance on a completed
// appointment is a no-op, not an error. The returned event is non-nil only
// when the billing trigger fires for the first time.
func Advance(a *Appointment) (*BillingEvent, error) {
	switch a.Status {
	case StatusPending:
		return SetStatus(a, StatusConfirmed)
	case StatusConfirmed:
		return SetStatus(a, StatusCompleted)
	case StatusCompleted:
		return nil, nil
	}
	return nil, ErrUnknownStatus
}

// SetStatus assigns a target status directly. It enforces the same rules as
// Advance: the target must be one of the three known statuses, transitions are
// forward-only, and billing fires exactly once on first confirmation even when
// the status was assigned rather than advanced. On error the appointment is
// left untouched.
func SetStatus(a *Appointment, target Status) (*BillingEvent, error) {
	if !target.Valid() {
		return nil, ErrUnknownStatus
	}
	if !a.Status.Valid() {
		return nil, ErrUnknownStatus
	}
	if target.order() < a.Status.order() {
		return nil, ErrBackwardTransition
	}

	var event *BillingEvent
	if target.order() >= StatusConfirmed.order() && !a.BillingTriggered {
		a.BillingTriggered = true
		event = &BillingEvent{AppointmentID: a.ID, Amount: a.Amount}
	}
	a.Status = target
	return event, nil
}

// Find returns a pointer into the slice for the appointment with the given id.
func Find(appointments []Appointment, id int) (*Appointment, error) {
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, ErrNotFound
}
