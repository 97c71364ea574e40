package entities

// PartnerStats is what a garage sees on its dashboard.
type PartnerStats struct {
	Revenue        float64 `json:"revenue"`
	ConfirmedCount int     `json:"confirmed_count"`
	Rating         float64 `json:"rating"`
}

// AdminStats is the platform-side view: how many appointments were confirmed
// across all garages and the commission owed for them.
type AdminStats struct {
	ConfirmedCount  int     `json:"confirmed_count"`
	CommissionTotal float64 `json:"commission_total"`
	PendingGarages  int     `json:"pending_garages"`
}
