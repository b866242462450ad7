package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkfleet/internal/models"
)

// TelemetryRepository persists raw tracker payloads and decoded fixes.
type TelemetryRepository struct {
	db *sql.DB
}

// NewTelemetryRepository returns repository.
func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// InsertRaw stores an inbound device payload.
func (r *TelemetryRepository) InsertRaw(ctx context.Context, raw *models.RawTelemetry) error {
	const query = `
		INSERT INTO raw_telemetry (imei, data, received_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		raw.IMEI,
		raw.Data,
		raw.ReceivedAt,
	).Scan(&raw.ID)
}

// GetRaw returns a stored payload by id.
func (r *TelemetryRepository) GetRaw(ctx context.Context, id int64) (*models.RawTelemetry, error) {
	const query = `
		SELECT id, imei, data, received_at
		FROM raw_telemetry
		WHERE id = $1
	`
	var raw models.RawTelemetry
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&raw.ID,
		&raw.IMEI,
		&raw.Data,
		&raw.ReceivedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("raw telemetry id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

// InsertFix stores one decoded GPS record.
func (r *TelemetryRepository) InsertFix(ctx context.Context, fix *models.VehicleFix) error {
	const query = `
		INSERT INTO vehicle_fixes (vehicle_id, raw_id, fixed_at, lat, lat_zone, lon, lon_zone, speed, course, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		fix.VehicleID,
		fix.RawID,
		fix.FixedAt,
		fix.Lat,
		fix.LatZone,
		fix.Lon,
		fix.LonZone,
		fix.Speed,
		fix.Course,
		fix.Height,
	).Scan(&fix.ID, &fix.CreatedAt)
}
