package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/db"
	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/schedule"
)

type BookingService struct {
	AppointmentRepo  *repository.AppointmentRepository
	GarageRepo       *repository.GarageRepository
	AvailabilityRepo *repository.AvailabilityRepository
	senderService    *SenderService
	billingService   *BillingService
}

func NewBookingService(appointmentRepo *repository.AppointmentRepository, garageRepo *repository.GarageRepository,
	availabilityRepo *repository.AvailabilityRepository, senderService *SenderService, billingService *BillingService) *BookingService {
	return &BookingService{
		AppointmentRepo:  appointmentRepo,
		GarageRepo:       garageRepo,
		AvailabilityRepo: availabilityRepo,
		senderService:    senderService,
		billingService:   billingService,
	}
}

// BookAppointment proposes a new appointment for a slot. The database owns the
// slot contention: a unique index on (garage_id, date) rejects the second
// writer, surfaced here as repository.ErrSlotTaken.
func (s *BookingService) BookAppointment(req *entities.BookingRequest) (*db.Appointment, error) {
	garage, err := s.GarageRepo.GetByID(req.GarageID)
	if err != nil {
		return nil, err
	}
	if garage.Status != db.GarageStatusActive {
		return nil, fmt.Errorf("garage '%s' is not accepting bookings", garage.ID)
	}
	if !req.Date.After(time.Now()) {
		return nil, fmt.Errorf("cannot book a slot in the past")
	}

	appointment := &db.Appointment{
		ClientName:       req.ClientName,
		Email:            req.Email,
		Phone:            req.Phone,
		Vehicle:          req.Vehicle,
		Date:             req.Date,
		GarageID:         req.GarageID,
		Status:           booking.StatusPending.String(),
		Amount:           req.Amount,
		Offers:           req.Offers,
		BillingTriggered: false,
	}
	if err := s.AppointmentRepo.Create(appointment); err != nil {
		return nil, err
	}

	s.senderService.SendAppointmentEmail(appointment, garage)
	s.senderService.SendAppointmentSMS(appointment, garage)
	return appointment, nil
}

// UpdateStatus applies a direct status assignment. The state engine validates
// the transition and decides whether billing fires; the repository applies the
// flag flip atomically so a racing confirm cannot double-bill; only the call
// that actually flipped the flag raises the commission charge.
func (s *BookingService) UpdateStatus(id int, rawStatus string) (*db.Appointment, error) {
	target, err := booking.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	row, err := s.AppointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	a := toEngineAppointment(row)
	event, err := booking.SetStatus(&a, target)
	if err != nil {
		return nil, err
	}

	fired, err := s.AppointmentRepo.UpdateStatus(id, a.Status.String(), event != nil)
	if err != nil {
		return nil, err
	}
	row.Status = a.Status.String()
	row.BillingTriggered = a.BillingTriggered

	if fired {
		s.handleBillingEvent(*event, row)
	}
	return row, nil
}

// AdvanceStatus moves an appointment one step forward. Advancing a completed
// appointment is a no-op.
func (s *BookingService) AdvanceStatus(id int) (*db.Appointment, error) {
	row, err := s.AppointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	a := toEngineAppointment(row)
	event, err := booking.Advance(&a)
	if err != nil {
		return nil, err
	}
	if a.Status.String() == row.Status {
		return row, nil
	}

	fired, err := s.AppointmentRepo.UpdateStatus(id, a.Status.String(), event != nil)
	if err != nil {
		return nil, err
	}
	row.Status = a.Status.String()
	row.BillingTriggered = a.BillingTriggered

	if fired {
		s.handleBillingEvent(*event, row)
	}
	return row, nil
}

func (s *BookingService) handleBillingEvent(event booking.BillingEvent, row *db.Appointment) {
	log.Printf("[BILLING] Commission triggered for appointment #%d (%.0f€ job)", event.AppointmentID, event.Amount)
	if err := s.billingService.ChargeCommission(event, row.GarageID); err != nil {
		log.Printf("WARNING: could not raise commission charge for appointment #%d: %v", event.AppointmentID, err)
	}
	garage, err := s.GarageRepo.GetByID(row.GarageID)
	if err != nil {
		log.Printf("WARNING: appointment #%d confirmed but garage lookup failed: %v", row.ID, err)
		return
	}
	s.senderService.SendAppointmentEmail(row, garage)
	s.senderService.SendAppointmentSMS(row, garage)
}

// SlotGrid classifies a week of half-hour slots for the booking calendar.
// Customers do not get past slots marked bookable; partners keep seeing
// historical bookings.
func (s *BookingService) SlotGrid(garageID string, weekStart time.Time, partnerView bool) (*entities.SlotGridResponse, error) {
	availabilityRows, err := s.AvailabilityRepo.ListByGarage(garageID)
	if err != nil {
		return nil, err
	}
	appointmentRows, err := s.AppointmentRepo.ListByGarage(garageID)
	if err != nil {
		return nil, err
	}

	availabilities := make([]schedule.Availability, 0, len(availabilityRows))
	for _, av := range availabilityRows {
		availabilities = append(availabilities, schedule.Availability{
			ID:        av.ID,
			GarageID:  av.GarageID,
			StartTime: av.StartTime,
			EndTime:   av.EndTime,
			Available: av.Available,
		})
	}
	appointments := make([]booking.Appointment, 0, len(appointmentRows))
	for i := range appointmentRows {
		appointments = append(appointments, toEngineAppointment(&appointmentRows[i]))
	}

	now := time.Now()
	grid := &entities.SlotGridResponse{GarageID: garageID, WeekOf: weekStart}
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		for _, slot := range schedule.DaySlots() {
			status := schedule.Classify(date, slot, availabilities, appointments)
			bookable := schedule.BookableByCustomer(date, slot, status, now)
			if partnerView {
				bookable = status != schedule.SlotBooked
			}
			grid.Slots = append(grid.Slots, entities.SlotResponse{
				StartTime: slot.At(date),
				Status:    string(status),
				Bookable:  bookable,
			})
		}
	}
	return grid, nil
}

func toEngineAppointment(row *db.Appointment) booking.Appointment {
	return booking.Appointment{
		ID:               row.ID,
		ClientName:       row.ClientName,
		Email:            row.Email,
		Phone:            row.Phone,
		Vehicle:          row.Vehicle,
		Date:             row.Date,
		GarageID:         row.GarageID,
		Status:           booking.Status(row.Status),
		Amount:           row.Amount,
		Offers:           row.Offers,
		BillingTriggered: row.BillingTriggered,
	}
}
