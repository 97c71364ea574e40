package db

import "time"

// Administrative garage statuses, stored verbatim. Only active garages are
// searchable, bookable, and allowed to authenticate with their access code.
const (
	GarageStatusPending   = "En attente"
	GarageStatusActive    = "Actif"
	GarageStatusSuspended = "Suspendu"
)

type Garage struct {
	ID               string
	Name             string
	Address          string
	City             string
	Lat              float64
	Lng              float64
	Rating           float64
	NextAvailability time.Time
	HomeService      bool
	CourtesyVehicle  bool
	Status           string
	AccessCode       string
	CreatedAt        time.Time
}

type Offer struct {
	ID              string
	GarageID        string
	Price           float64
	Currency        string
	Description     string
	DurationMinutes int
}

type Appointment struct {
	ID                  int
	ClientName          string
	Email               string
	Phone               string
	Vehicle             string
	Date                time.Time
	GarageID            string
	Status              string
	Amount              float64
	Offers              []string
	BillingTriggered    bool
	CommissionSessionID string
	CommissionPaid      bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Availability struct {
	ID        int
	GarageID  string
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// AdminGarage is the registration record a garage files before activation. On
// approval it is materialized at most once into a searchable Garage plus its
// default offer; GarageID holds the link once that has happened.
type AdminGarage struct {
	ID               int
	Name             string
	City             string
	Address          string
	Email            string
	Phone            string
	TaxID            string
	OfferDescription string
	OfferPrice       float64
	HomeService      bool
	CourtesyVehicle  bool
	Status           string
	GarageID         string
	GeneratedCode    string
	RegistrationDate time.Time
}
