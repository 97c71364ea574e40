package service

import (
	"fmt"
	"log"

	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteElapsedAppointments finds confirmed appointments whose slot has
// passed and moves them to their terminal status. Billing was already
// triggered at confirmation, so no billing event can fire here.
func (s *JobService) CompleteElapsedAppointments() error {
	log.Println("Cron Job: checking for confirmed appointments to mark as completed...")

	ids, err := s.Repo.GetConfirmedAppointmentIDsPastDate(booking.StatusConfirmed.String())
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed appointments past their date: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: no confirmed appointments found past their date.")
		return nil
	}

	log.Printf("Cron Job: found %d appointments to mark as completed. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateAppointmentStatuses(ids, booking.StatusCompleted.String()); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	log.Printf("Cron Job: successfully completed %d appointments.", len(ids))
	return nil
}
