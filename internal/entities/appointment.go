package entities

import "time"

type BookingRequest struct {
	GarageID   string    `json:"garage_id"`
	ClientName string    `json:"client_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Vehicle    string    `json:"vehicle"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Offers     []string  `json:"offers"`
}

type BookingResponse struct {
	AppointmentID int    `json:"appointment_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// AppointmentResponse is the partner-facing view of an appointment. Contact
// details stay masked until the appointment is confirmed.
type AppointmentResponse struct {
	ID               int       `json:"id"`
	Reference        string    `json:"reference"`
	ClientName       string    `json:"client_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Vehicle          string    `json:"vehicle"`
	Date             time.Time `json:"date"`
	GarageID         string    `json:"garage_id"`
	Status           string    `json:"status"`
	Amount           float64   `json:"amount"`
	Offers           []string  `json:"offers"`
	BillingTriggered bool      `json:"billing_triggered"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
