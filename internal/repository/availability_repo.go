package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yamensam88/vitrio/internal/db"
)

var ErrAvailabilityNotFound = errors.New("availability not found")

type AvailabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(database *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{DB: database}
}

func (r *AvailabilityRepository) ListByGarage(garageID string) ([]db.Availability, error) {
	query := `
		SELECT id, garage_id, start_time, end_time, is_available
		FROM availabilities
		WHERE garage_id = $1
		ORDER BY start_time ASC`

	rows, err := r.DB.Query(query, garageID)
	if err != nil {
		return nil, fmt.Errorf("error querying availabilities for garage '%s': %w", garageID, err)
	}
	defer rows.Close()

	var availabilities []db.Availability
	for rows.Next() {
		var av db.Availability
		if err := rows.Scan(&av.ID, &av.GarageID, &av.StartTime, &av.EndTime, &av.Available); err != nil {
			return nil, fmt.Errorf("error scanning availability: %w", err)
		}
		availabilities = append(availabilities, av)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating availabilities: %w", err)
	}
	return availabilities, nil
}

// Open declares a half-hour slot bookable. The unique index on
// (garage_id, start_time) makes re-opening the same slot a no-op.
func (r *AvailabilityRepository) Open(garageID string, start time.Time) (*db.Availability, error) {
	av := db.Availability{
		GarageID:  garageID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Available: true,
	}
	query := `
		INSERT INTO availabilities (garage_id, start_time, end_time, is_available)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (garage_id, start_time) DO UPDATE SET is_available = TRUE
		RETURNING id`
	if err := r.DB.QueryRow(query, av.GarageID, av.StartTime, av.EndTime).Scan(&av.ID); err != nil {
		return nil, fmt.Errorf("error opening slot for garage '%s': %w", garageID, err)
	}
	return &av, nil
}

func (r *AvailabilityRepository) Close(id int, garageID string) error {
	result, err := r.DB.Exec(`DELETE FROM availabilities WHERE id = $1 AND garage_id = $2`, id, garageID)
	if err != nil {
		return fmt.Errorf("error closing availability %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}
