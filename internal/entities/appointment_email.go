package entities

type AppointmentEmailData struct {
	ClientName    string
	GarageName    string
	GarageAddress string
	Vehicle       string
	DateFormatted string
	Offers        []string
	Amount        float64
	Status        string
	CurrentYear   int
}
