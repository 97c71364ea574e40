package booking

import "fmt"

// Status is the lifecycle state of an appointment. The French labels are the
// values stored in the database and sent over the API; they must match exactly,
// accents included.
type Status string

const (
	StatusPending   Status = "En attente"
	StatusConfirmed Status = "Confirmé"
	StatusCompleted Status = "Terminé"
)

// ParseStatus validates a raw status string coming from the API or the database.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// order gives the forward-only position of a status in the lifecycle.
func (s Status) order() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}
