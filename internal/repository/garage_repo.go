package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yamensam88/vitrio/internal/db"
)

var ErrGarageNotFound = errors.New("garage not found")

type GarageRepository struct {
	DB *sql.DB
}

func NewGarageRepository(database *sql.DB) *GarageRepository {
	return &GarageRepository{DB: database}
}

// ListActive returns every active garage with its offers attached. Only active
// garages are candidates for search and booking.
func (r *GarageRepository) ListActive() ([]db.Garage, map[string][]db.Offer, error) {
	query := `
		SELECT id, name, address, city, lat, lng, rating, next_availability,
		       home_service, courtesy_vehicle, status, created_at
		FROM garages
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, db.GarageStatusActive)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying active garages: %w", err)
	}
	defer rows.Close()

	var garages []db.Garage
	for rows.Next() {
		var g db.Garage
		if err := rows.Scan(&g.ID, &g.Name, &g.Address, &g.City, &g.Lat, &g.Lng, &g.Rating,
			&g.NextAvailability, &g.HomeService, &g.CourtesyVehicle, &g.Status, &g.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("error scanning garage: %w", err)
		}
		garages = append(garages, g)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error after iterating garages: %w", err)
	}

	offers, err := r.listOffers()
	if err != nil {
		return nil, nil, err
	}
	return garages, offers, nil
}

func (r *GarageRepository) listOffers() (map[string][]db.Offer, error) {
	rows, err := r.DB.Query(`SELECT id, garage_id, price, currency, description, duration_minutes FROM offers`)
	if err != nil {
		return nil, fmt.Errorf("error querying offers: %w", err)
	}
	defer rows.Close()

	offers := make(map[string][]db.Offer)
	for rows.Next() {
		var o db.Offer
		if err := rows.Scan(&o.ID, &o.GarageID, &o.Price, &o.Currency, &o.Description, &o.DurationMinutes); err != nil {
			return nil, fmt.Errorf("error scanning offer: %w", err)
		}
		offers[o.GarageID] = append(offers[o.GarageID], o)
	}
	return offers, rows.Err()
}

func (r *GarageRepository) GetByID(id string) (*db.Garage, error) {
	var g db.Garage
	query := `
		SELECT id, name, address, city, lat, lng, rating, next_availability,
		       home_service, courtesy_vehicle, status, access_code, created_at
		FROM garages WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&g.ID, &g.Name, &g.Address, &g.City, &g.Lat, &g.Lng,
		&g.Rating, &g.NextAvailability, &g.HomeService, &g.CourtesyVehicle, &g.Status, &g.AccessCode, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGarageNotFound
		}
		return nil, fmt.Errorf("error querying garage '%s': %w", id, err)
	}
	return &g, nil
}

// GetByAccessCode resolves a partner login. Suspended and pending garages
// cannot authenticate, so the lookup is restricted to active ones.
func (r *GarageRepository) GetByAccessCode(code string) (*db.Garage, error) {
	var g db.Garage
	query := `
		SELECT id, name, address, city, lat, lng, rating, next_availability,
		       home_service, courtesy_vehicle, status, access_code, created_at
		FROM garages WHERE access_code = $1 AND status = $2`
	err := r.DB.QueryRow(query, code, db.GarageStatusActive).Scan(&g.ID, &g.Name, &g.Address, &g.City,
		&g.Lat, &g.Lng, &g.Rating, &g.NextAvailability, &g.HomeService, &g.CourtesyVehicle,
		&g.Status, &g.AccessCode, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGarageNotFound
		}
		return nil, fmt.Errorf("error querying garage by access code: %w", err)
	}
	return &g, nil
}

func (r *GarageRepository) UpdateNextAvailability(id string, next time.Time) error {
	result, err := r.DB.Exec(`UPDATE garages SET next_availability = $2 WHERE id = $1`, id, next)
	if err != nil {
		return fmt.Errorf("error updating next availability for garage '%s': %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrGarageNotFound
	}
	return nil
}

func (r *GarageRepository) SetAccessCode(id, code string) error {
	result, err := r.DB.Exec(`UPDATE garages SET access_code = $2 WHERE id = $1`, id, code)
	if err != nil {
		return fmt.Errorf("error setting access code for garage '%s': %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrGarageNotFound
	}
	return nil
}

// CreateFromRegistration materializes an approved registration into a
// searchable garage plus its default offer, in one transaction. The caller is
// responsible for only invoking this once per registration (the admin_garages
// garage_id link is the idempotency guard).
func (r *GarageRepository) CreateFromRegistration(reg *db.AdminGarage, garageID string, rating float64, next time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting garage creation tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO garages (id, name, address, city, lat, lng, rating, next_availability,
		                     home_service, courtesy_vehicle, status, access_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, '', NOW())`,
		garageID, reg.Name, reg.Address, reg.City, 0.0, 0.0, rating, next,
		reg.HomeService, reg.CourtesyVehicle, db.GarageStatusActive)
	if err != nil {
		return fmt.Errorf("error inserting garage for registration %d: %w", reg.ID, err)
	}

	_, err = tx.Exec(`
		INSERT INTO offers (id, garage_id, price, currency, description, duration_minutes)
		VALUES ($1, $2, $3, 'EUR', $4, $5)`,
		"o_"+garageID, garageID, reg.OfferPrice, reg.OfferDescription, 120)
	if err != nil {
		return fmt.Errorf("error inserting default offer for garage '%s': %w", garageID, err)
	}

	_, err = tx.Exec(`UPDATE admin_garages SET garage_id = $2 WHERE id = $1`, reg.ID, garageID)
	if err != nil {
		return fmt.Errorf("error linking registration %d to garage '%s': %w", reg.ID, garageID, err)
	}

	return tx.Commit()
}
