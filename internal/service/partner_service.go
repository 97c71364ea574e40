package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/db"
	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/utils"
)

type PartnerService struct {
	GarageRepo       *repository.GarageRepository
	AppointmentRepo  *repository.AppointmentRepository
	AvailabilityRepo *repository.AvailabilityRepository
}

func NewPartnerService(garageRepo *repository.GarageRepository, appointmentRepo *repository.AppointmentRepository,
	availabilityRepo *repository.AvailabilityRepository) *PartnerService {
	return &PartnerService{
		GarageRepo:       garageRepo,
		AppointmentRepo:  appointmentRepo,
		AvailabilityRepo: availabilityRepo,
	}
}

// Login authenticates a garage by its access code. Only active garages can
// log in; the repository enforces that in the lookup itself.
func (s *PartnerService) Login(accessCode string) (*entities.PartnerLoginResponse, error) {
	if accessCode == "" {
		return nil, errors.New("invalid credentials")
	}
	garage, err := s.GarageRepo.GetByAccessCode(accessCode)
	if err != nil {
		if errors.Is(err, repository.ErrGarageNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"garage_id": garage.ID,
		"role":      "partner",
		"exp":       time.Now().Add(12 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &entities.PartnerLoginResponse{Token: token, GarageID: garage.ID, Name: garage.Name}, nil
}

// ListAppointments returns the garage's appointments, masking client contact
// details until an appointment has been confirmed.
func (s *PartnerService) ListAppointments(garageID string) ([]entities.AppointmentResponse, error) {
	rows, err := s.AppointmentRepo.ListByGarage(garageID)
	if err != nil {
		return nil, err
	}

	responses := make([]entities.AppointmentResponse, 0, len(rows))
	for _, row := range rows {
		resp := entities.AppointmentResponse{
			ID:               row.ID,
			Reference:        utils.AppointmentReference(row.ID),
			ClientName:       row.ClientName,
			Email:            row.Email,
			Phone:            row.Phone,
			Vehicle:          row.Vehicle,
			Date:             row.Date,
			GarageID:         row.GarageID,
			Status:           row.Status,
			Amount:           row.Amount,
			Offers:           row.Offers,
			BillingTriggered: row.BillingTriggered,
		}
		if row.Status == booking.StatusPending.String() {
			resp.ClientName = utils.MaskName(row.ClientName)
			resp.Email = utils.MaskEmail(row.Email)
			resp.Phone = utils.MaskPhone(row.Phone)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Stats recomputes the partner dashboard figures from the full appointment
// collection on every call.
func (s *PartnerService) Stats(garageID string) (*entities.PartnerStats, error) {
	garage, err := s.GarageRepo.GetByID(garageID)
	if err != nil {
		return nil, err
	}
	rows, err := s.AppointmentRepo.ListByGarage(garageID)
	if err != nil {
		return nil, err
	}

	appointments := make([]booking.Appointment, 0, len(rows))
	for i := range rows {
		appointments = append(appointments, toEngineAppointment(&rows[i]))
	}
	return &entities.PartnerStats{
		Revenue:        booking.Revenue(appointments),
		ConfirmedCount: booking.ConfirmedCount(appointments),
		Rating:         garage.Rating,
	}, nil
}

// OpenSlot declares a half-hour slot bookable and pulls the garage's next
// availability forward when the new slot is sooner.
func (s *PartnerService) OpenSlot(garageID string, start time.Time) (*db.Availability, error) {
	av, err := s.AvailabilityRepo.Open(garageID, start)
	if err != nil {
		return nil, err
	}

	garage, err := s.GarageRepo.GetByID(garageID)
	if err != nil {
		return nil, err
	}
	if garage.NextAvailability.IsZero() || start.Before(garage.NextAvailability) {
		if err := s.GarageRepo.UpdateNextAvailability(garageID, start); err != nil {
			return nil, err
		}
	}
	return av, nil
}

func (s *PartnerService) CloseSlot(garageID string, availabilityID int) error {
	return s.AvailabilityRepo.Close(availabilityID, garageID)
}
