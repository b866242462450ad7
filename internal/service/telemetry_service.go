package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"parkfleet/internal/models"
	"parkfleet/internal/telemetry"
)

// VehicleResolver matches a tracker identifier to a fleet vehicle.
type VehicleResolver interface {
	GetByIMEI(ctx context.Context, imei string) (*models.Vehicle, error)
}

// FixWriter persists decoded GPS records.
type FixWriter interface {
	InsertFix(ctx context.Context, fix *models.VehicleFix) error
}

// TelemetryService decodes raw tracker payloads and persists vehicle fixes.
type TelemetryService struct {
	vehicles VehicleResolver
	fixes    FixWriter
	loc      *time.Location
	logger   *zap.Logger
}

// NewTelemetryService builds service. loc is the deployment time zone used
// for device-local timestamps.
func NewTelemetryService(vehicles VehicleResolver, fixes FixWriter, loc *time.Location, logger *zap.Logger) *TelemetryService {
	return &TelemetryService{
		vehicles: vehicles,
		fixes:    fixes,
		loc:      loc,
		logger:   logger,
	}
}

// HandleRaw decodes one stored payload and persists exactly one VehicleFix.
// Decode failures and unknown devices return errors and leave no side
// effects; the message is dropped, not retried. Re-handling the same raw
// message produces a duplicate fix: the wire format carries no record id to
// dedup on.
func (s *TelemetryService) HandleRaw(ctx context.Context, raw *models.RawTelemetry) (*models.VehicleFix, error) {
	decoded, err := telemetry.Decode(raw.Data, s.loc)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByIMEI(ctx, raw.IMEI)
	if err != nil {
		return nil, err
	}

	fix := &models.VehicleFix{
		VehicleID: vehicle.ID,
		RawID:     raw.ID,
		FixedAt:   decoded.FixedAt,
		Lat:       decoded.Lat,
		LatZone:   decoded.LatZone,
		Lon:       decoded.Lon,
		LonZone:   decoded.LonZone,
		Speed:     decoded.Speed,
		Course:    decoded.Course,
		Height:    decoded.Height,
	}
	if err := s.fixes.InsertFix(ctx, fix); err != nil {
		return nil, fmt.Errorf("persist fix: %w", err)
	}

	s.logger.Debug("vehicle fix stored",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("raw_id", raw.ID),
		zap.Float64("lat", fix.Lat),
		zap.Float64("lon", fix.Lon),
	)
	return fix, nil
}
