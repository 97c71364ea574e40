package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/db"
	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
)

type AdminService struct {
	AdminGarageRepo *repository.AdminGarageRepository
	GarageRepo      *repository.GarageRepository
	AppointmentRepo *repository.AppointmentRepository
	senderService   *SenderService
}

func NewAdminService(adminGarageRepo *repository.AdminGarageRepository, garageRepo *repository.GarageRepository,
	appointmentRepo *repository.AppointmentRepository, senderService *SenderService) *AdminService {
	return &AdminService{
		AdminGarageRepo: adminGarageRepo,
		GarageRepo:      garageRepo,
		AppointmentRepo: appointmentRepo,
		senderService:   senderService,
	}
}

// Register files a new partner registration. OfferPrice is the price the
// garage charges the customer for its default offer; negative values are a
// form error, not a discount convention.
func (s *AdminService) Register(req *entities.RegistrationRequest) (*db.AdminGarage, error) {
	if req.Name == "" || req.City == "" || req.Email == "" {
		return nil, errors.New("name, city and email are required")
	}
	if req.OfferPrice < 0 {
		return nil, errors.New("offer_price must not be negative")
	}
	if !req.AcceptTerms {
		return nil, errors.New("terms must be accepted")
	}

	registration := &db.AdminGarage{
		Name:             req.Name,
		City:             req.City,
		Address:          req.Address,
		Email:            req.Email,
		Phone:            req.Phone,
		TaxID:            req.TaxID,
		OfferDescription: req.OfferDescription,
		OfferPrice:       req.OfferPrice,
		HomeService:      req.HomeService,
		CourtesyVehicle:  req.CourtesyVehicle,
		Status:           db.GarageStatusPending,
	}
	if err := s.AdminGarageRepo.Create(registration); err != nil {
		return nil, err
	}
	return registration, nil
}

func (s *AdminService) ListRegistrations(status string) ([]db.AdminGarage, error) {
	if status != "" && status != db.GarageStatusPending && status != db.GarageStatusActive && status != db.GarageStatusSuspended {
		return nil, fmt.Errorf("unknown garage status '%s'", status)
	}
	return s.AdminGarageRepo.List(status)
}

// UpdateStatus activates or suspends a registration; the repository propagates
// the change to the searchable garage so search and login are gated together.
func (s *AdminService) UpdateStatus(id int, status string) error {
	if status != db.GarageStatusPending && status != db.GarageStatusActive && status != db.GarageStatusSuspended {
		return fmt.Errorf("unknown garage status '%s'", status)
	}
	return s.AdminGarageRepo.UpdateStatus(id, status)
}

// GenerateAccessCode approves a registration: materializes the searchable
// garage once, issues a fresh 4-digit login code, and emails it to the
// partner. Re-running it on an already-materialized registration only rotates
// the code; it never creates a duplicate garage.
func (s *AdminService) GenerateAccessCode(id int) (string, error) {
	registration, err := s.AdminGarageRepo.GetByID(id)
	if err != nil {
		return "", err
	}

	if registration.GarageID == "" {
		garageID := fmt.Sprintf("g%d", registration.ID+100)
		if err := s.GarageRepo.CreateFromRegistration(registration, garageID, 5.0, time.Now()); err != nil {
			return "", err
		}
		registration.GarageID = garageID
	}

	code := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
	if err := s.AdminGarageRepo.SetGeneratedCode(id, code); err != nil {
		return "", err
	}
	if err := s.GarageRepo.SetAccessCode(registration.GarageID, code); err != nil {
		return "", err
	}
	if err := s.AdminGarageRepo.UpdateStatus(id, db.GarageStatusActive); err != nil {
		return "", err
	}

	s.senderService.SendAccessCodeEmail(registration, code)
	return code, nil
}

// Stats is the platform-side dashboard: confirmed appointments across all
// garages and the flat commission owed for them.
func (s *AdminService) Stats() (*entities.AdminStats, error) {
	rows, err := s.AppointmentRepo.ListAll()
	if err != nil {
		return nil, err
	}
	appointments := make([]booking.Appointment, 0, len(rows))
	for i := range rows {
		appointments = append(appointments, toEngineAppointment(&rows[i]))
	}

	pending, err := s.AdminGarageRepo.CountByStatus(db.GarageStatusPending)
	if err != nil {
		return nil, err
	}
	return &entities.AdminStats{
		ConfirmedCount:  booking.ConfirmedCount(appointments),
		CommissionTotal: booking.CommissionTotal(appointments),
		PendingGarages:  pending,
	}, nil
}

func (s *AdminService) ListAppointments() ([]db.Appointment, error) {
	return s.AppointmentRepo.ListAll()
}
