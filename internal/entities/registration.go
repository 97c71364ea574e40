package entities

// RegistrationRequest is the partner sign-up form. OfferPrice is the
// non-negative EUR price of the garage's default offer as shown to customers.
type RegistrationRequest struct {
	Name             string  `json:"name"`
	City             string  `json:"city"`
	Address          string  `json:"address"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	TaxID            string  `json:"tax_id"`
	OfferDescription string  `json:"offer_description"`
	OfferPrice       float64 `json:"offer_price"`
	HomeService      bool    `json:"home_service"`
	CourtesyVehicle  bool    `json:"courtesy_vehicle"`
	AcceptTerms      bool    `json:"accept_terms"`
}

type PartnerLoginRequest struct {
	AccessCode string `json:"access_code"`
}

type PartnerLoginResponse struct {
	Token    string `json:"token"`
	GarageID string `json:"garage_id"`
	Name     string `json:"name"`
}
