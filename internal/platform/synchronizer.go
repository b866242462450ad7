package platform

import (
	"context"

	"parkfleet/internal/models"
	"parkfleet/internal/status"
)

// Synchronizer is the contract with one external fleet platform. The
// scraping internals live behind the automation endpoint; this layer only
// orchestrates the operations.
type Synchronizer interface {
	Name() string
	DriverStatus(ctx context.Context) (*status.Report, error)
	Synchronize(ctx context.Context) error
	DownloadWeeklyReport(ctx context.Context) error
	DownloadDailyReport(ctx context.Context) error
	AddDriver(ctx context.Context, candidate *models.JobApplication) error
}

// RentProvider is the contract with the GPS tracking provider that reports
// rent distance per vehicle.
type RentProvider interface {
	Name() string
	RentDistance(ctx context.Context) error
}
