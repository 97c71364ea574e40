package entities

import "github.com/yamensam88/vitrio/internal/search"

type SearchRequest struct {
	// Caller location, optional. Without it the distance criterion is ignored.
	Location        *search.Coordinates `json:"location,omitempty"`
	SortBy          []string            `json:"sort_by"`
	HomeService     bool                `json:"home_service"`
	CourtesyVehicle bool                `json:"courtesy_vehicle"`
	City            string              `json:"city,omitempty"`
}

type SearchResponse struct {
	Garages []search.RankedGarage `json:"garages"`
	Total   int                   `json:"total"`
}
