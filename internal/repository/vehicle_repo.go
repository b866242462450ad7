package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkfleet/internal/models"
)

// VehicleRepository resolves fleet vehicles.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository returns repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// GetByIMEI resolves a vehicle by its GPS tracker identifier.
func (r *VehicleRepository) GetByIMEI(ctx context.Context, imei string) (*models.Vehicle, error) {
	const query = `
		SELECT id, name, licence_plate, gps_imei, created_at
		FROM vehicles
		WHERE gps_imei = $1
	`
	var v models.Vehicle
	err := r.db.QueryRowContext(ctx, query, imei).Scan(
		&v.ID,
		&v.Name,
		&v.LicencePlate,
		&v.GPSIMEI,
		&v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle gps_imei=%s: %w", imei, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
