package entities

import "time"

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	Status    string    `json:"status"`
	Bookable  bool      `json:"bookable"`
}

type SlotGridResponse struct {
	GarageID string         `json:"garage_id"`
	WeekOf   time.Time      `json:"week_of"`
	Slots    []SlotResponse `json:"slots"`
}

type AvailabilityRequest struct {
	StartTime time.Time `json:"start_time"`
}
