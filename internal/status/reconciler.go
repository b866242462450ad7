package status

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"parkfleet/internal/models"
)

// DriverStore is the slice of the fleet-management persistence the
// reconciler needs.
type DriverStore interface {
	ListActive(ctx context.Context) ([]models.Driver, error)
	LatestStatusRecord(ctx context.Context, driverID int64) (string, bool, error)
	UpdateStatus(ctx context.Context, driverID int64, status string) error
}

// Reconciler merges per-platform status reports into one canonical status
// per driver.
type Reconciler struct {
	drivers DriverStore
	logger  *zap.Logger
}

// NewReconciler builds reconciler.
func NewReconciler(drivers DriverStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{drivers: drivers, logger: logger}
}

// Reconcile runs one reconciliation cycle. Nil reports (platforms whose sync
// failed this cycle) contribute nothing: they neither promote nor demote.
// Each driver starts from the latest persisted status record (offline when
// none exists), is upgraded to active on membership in any platform's
// online/waiting set and further to with_client on membership in any
// with-client set. With-client strictly dominates online; evaluation order
// across platforms is irrelevant because the sets are unioned first. The
// status is written exactly once per driver per cycle.
func (r *Reconciler) Reconcile(ctx context.Context, reports []*Report) error {
	online := make(map[DriverKey]struct{})
	withClient := make(map[DriverKey]struct{})
	for _, report := range reports {
		if report == nil {
			continue
		}
		for key := range report.Online {
			online[key] = struct{}{}
		}
		for key := range report.WithClient {
			withClient[key] = struct{}{}
		}
	}

	drivers, err := r.drivers.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}

	for _, driver := range drivers {
		current := models.DriverStatusOffline
		persisted, ok, err := r.drivers.LatestStatusRecord(ctx, driver.ID)
		if err != nil {
			return fmt.Errorf("latest status record driver=%d: %w", driver.ID, err)
		}
		if ok {
			current = persisted
		}

		key := DriverKey{FirstName: driver.FirstName, SecondName: driver.SecondName}
		if _, found := online[key]; found {
			current = models.DriverStatusActive
		}
		if _, found := withClient[key]; found {
			current = models.DriverStatusWithClient
		}

		if err := r.drivers.UpdateStatus(ctx, driver.ID, current); err != nil {
			return fmt.Errorf("update status driver=%d: %w", driver.ID, err)
		}
		if current != models.DriverStatusOffline {
			r.logger.Info("driver status",
				zap.String("first_name", driver.FirstName),
				zap.String("second_name", driver.SecondName),
				zap.String("status", current),
			)
		}
	}
	return nil
}
