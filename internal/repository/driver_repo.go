package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkfleet/internal/models"
)

// DriverRepository reads and updates fleet drivers.
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository returns repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// ListActive returns all non-deleted drivers.
func (r *DriverRepository) ListActive(ctx context.Context) ([]models.Driver, error) {
	const query = `
		SELECT id, first_name, second_name, status, deleted_at, created_at, updated_at
		FROM drivers
		WHERE deleted_at IS NULL
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(
			&d.ID,
			&d.FirstName,
			&d.SecondName,
			&d.Status,
			&d.DeletedAt,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// LatestStatusRecord returns the most recent persisted status for the driver,
// or ("", false) when the fleet-management subsystem has never reported one.
func (r *DriverRepository) LatestStatusRecord(ctx context.Context, driverID int64) (string, bool, error) {
	const query = `
		SELECT status
		FROM driver_status_records
		WHERE driver_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	var status string
	err := r.db.QueryRowContext(ctx, query, driverID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

// UpdateStatus writes the driver's canonical status. Called exactly once per
// driver per reconciliation cycle.
func (r *DriverRepository) UpdateStatus(ctx context.Context, driverID int64, status string) error {
	const query = `
		UPDATE drivers
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, driverID, status)
	return err
}
