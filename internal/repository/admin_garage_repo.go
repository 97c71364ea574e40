package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/yamensam88/vitrio/internal/db"
)

var ErrRegistrationNotFound = errors.New("garage registration not found")

type AdminGarageRepository struct {
	DB *sql.DB
}

func NewAdminGarageRepository(database *sql.DB) *AdminGarageRepository {
	return &AdminGarageRepository{DB: database}
}

const adminGarageColumns = `
	id, name, city, address, email, phone, tax_id, offer_description, offer_price,
	home_service, courtesy_vehicle, status, COALESCE(garage_id, ''), COALESCE(generated_code, ''), registration_date`

func (r *AdminGarageRepository) List(status string) ([]db.AdminGarage, error) {
	query := `SELECT` + adminGarageColumns + ` FROM admin_garages`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY registration_date DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying garage registrations: %w", err)
	}
	defer rows.Close()

	var registrations []db.AdminGarage
	for rows.Next() {
		var g db.AdminGarage
		if err := rows.Scan(&g.ID, &g.Name, &g.City, &g.Address, &g.Email, &g.Phone, &g.TaxID,
			&g.OfferDescription, &g.OfferPrice, &g.HomeService, &g.CourtesyVehicle,
			&g.Status, &g.GarageID, &g.GeneratedCode, &g.RegistrationDate); err != nil {
			return nil, fmt.Errorf("error scanning garage registration: %w", err)
		}
		registrations = append(registrations, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating garage registrations: %w", err)
	}
	return registrations, nil
}

func (r *AdminGarageRepository) GetByID(id int) (*db.AdminGarage, error) {
	var g db.AdminGarage
	query := `SELECT` + adminGarageColumns + ` FROM admin_garages WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&g.ID, &g.Name, &g.City, &g.Address, &g.Email, &g.Phone,
		&g.TaxID, &g.OfferDescription, &g.OfferPrice, &g.HomeService, &g.CourtesyVehicle,
		&g.Status, &g.GarageID, &g.GeneratedCode, &g.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error querying garage registration %d: %w", id, err)
	}
	return &g, nil
}

// GetByGarageID finds the registration behind a searchable garage, used to
// recover partner contact details (the garages table carries none).
func (r *AdminGarageRepository) GetByGarageID(garageID string) (*db.AdminGarage, error) {
	var g db.AdminGarage
	query := `SELECT` + adminGarageColumns + ` FROM admin_garages WHERE garage_id = $1`
	err := r.DB.QueryRow(query, garageID).Scan(&g.ID, &g.Name, &g.City, &g.Address, &g.Email, &g.Phone,
		&g.TaxID, &g.OfferDescription, &g.OfferPrice, &g.HomeService, &g.CourtesyVehicle,
		&g.Status, &g.GarageID, &g.GeneratedCode, &g.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error querying registration for garage '%s': %w", garageID, err)
	}
	return &g, nil
}

func (r *AdminGarageRepository) Create(g *db.AdminGarage) error {
	query := `
		INSERT INTO admin_garages
		(name, city, address, email, phone, tax_id, offer_description, offer_price,
		 home_service, courtesy_vehicle, status, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, registration_date`
	err := r.DB.QueryRow(query,
		g.Name, g.City, g.Address, g.Email, g.Phone, g.TaxID,
		g.OfferDescription, g.OfferPrice, g.HomeService, g.CourtesyVehicle, g.Status,
	).Scan(&g.ID, &g.RegistrationDate)
	if err != nil {
		return fmt.Errorf("error creating garage registration: %w", err)
	}
	return nil
}

// UpdateStatus changes a registration's status and propagates it to the linked
// searchable garage in the same transaction, so suspension takes effect on
// search and login at once.
func (r *AdminGarageRepository) UpdateStatus(id int, status string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting status update tx: %w", err)
	}
	defer tx.Rollback()

	var garageID sql.NullString
	err = tx.QueryRow(`UPDATE admin_garages SET status = $2 WHERE id = $1 RETURNING garage_id`, id, status).Scan(&garageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("error updating registration %d status: %w", id, err)
	}

	if garageID.Valid && garageID.String != "" {
		if _, err := tx.Exec(`UPDATE garages SET status = $2 WHERE id = $1`, garageID.String, status); err != nil {
			return fmt.Errorf("error propagating status to garage '%s': %w", garageID.String, err)
		}
	}
	return tx.Commit()
}

func (r *AdminGarageRepository) SetGeneratedCode(id int, code string) error {
	result, err := r.DB.Exec(`UPDATE admin_garages SET generated_code = $2 WHERE id = $1`, id, code)
	if err != nil {
		return fmt.Errorf("error storing generated code for registration %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func (r *AdminGarageRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM admin_garages WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations with status '%s': %w", status, err)
	}
	return count, nil
}
