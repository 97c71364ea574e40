package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/yamensam88/vitrio/internal/db"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSlotTaken surfaces the unique index on (garage_id, date): the database
	// is the arbiter when two customers race for the same slot.
	ErrSlotTaken = errors.New("slot already booked")
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

const appointmentColumns = `
	id, client_name, email, phone, vehicle, date, garage_id, status, amount,
	offers, billing_triggered, commission_session_id, commission_paid, created_at, updated_at`

func (r *AppointmentRepository) Create(a *db.Appointment) error {
	query := `
		INSERT INTO appointments
		(client_name, email, phone, vehicle, date, garage_id, status, amount, offers,
		 billing_triggered, commission_session_id, commission_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '', FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		a.ClientName, a.Email, a.Phone, a.Vehicle, a.Date, a.GarageID,
		a.Status, a.Amount, pq.Array(a.Offers), a.BillingTriggered,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(id int) (*db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE id = $1`
	a, err := scanAppointment(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("error querying appointment %d: %w", id, err)
	}
	return a, nil
}

func (r *AppointmentRepository) ListByGarage(garageID string) ([]db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE garage_id = $1 ORDER BY date ASC`
	return r.list(query, garageID)
}

func (r *AppointmentRepository) ListAll() ([]db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`
	return r.list(query)
}

func (r *AppointmentRepository) list(query string, args ...interface{}) ([]db.Appointment, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus persists a status change. When triggerBilling is set the flag
// flip happens in the same statement, guarded by billing_triggered = FALSE, so
// two concurrent confirmations can never both claim the billing event. The
// returned bool reports whether this call actually flipped the flag.
func (r *AppointmentRepository) UpdateStatus(id int, status string, triggerBilling bool) (bool, error) {
	if triggerBilling {
		result, err := r.DB.Exec(`
			UPDATE appointments
			SET status = $2, billing_triggered = TRUE, updated_at = NOW()
			WHERE id = $1 AND billing_triggered = FALSE`, id, status)
		if err != nil {
			return false, fmt.Errorf("error updating appointment %d status with billing: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 1 {
			return true, nil
		}
		// The flag was already set by a concurrent writer; fall through to a
		// plain status update.
	}

	result, err := r.DB.Exec(`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return false, fmt.Errorf("error updating appointment %d status: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, ErrAppointmentNotFound
	}
	return false, nil
}

// SetCommissionSession records the Stripe checkout session raised for the
// platform fee of an appointment.
func (r *AppointmentRepository) SetCommissionSession(id int, sessionID string) error {
	result, err := r.DB.Exec(`UPDATE appointments SET commission_session_id = $2, updated_at = NOW() WHERE id = $1`, id, sessionID)
	if err != nil {
		return fmt.Errorf("error recording commission session for appointment %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// MarkCommissionPaid is driven by the Stripe webhook once the platform fee
// checkout completes.
func (r *AppointmentRepository) MarkCommissionPaid(sessionID string) error {
	result, err := r.DB.Exec(`UPDATE appointments SET commission_paid = TRUE, updated_at = NOW() WHERE commission_session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("error marking commission paid for session '%s': %w", sessionID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) GetByCommissionSession(sessionID string) (*db.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE commission_session_id = $1`
	a, err := scanAppointment(r.DB.QueryRow(query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("error querying appointment by commission session: %w", err)
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*db.Appointment, error) {
	var a db.Appointment
	var offers pq.StringArray
	err := row.Scan(&a.ID, &a.ClientName, &a.Email, &a.Phone, &a.Vehicle, &a.Date,
		&a.GarageID, &a.Status, &a.Amount, &offers, &a.BillingTriggered,
		&a.CommissionSessionID, &a.CommissionPaid, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Offers = offers
	return &a, nil
}
