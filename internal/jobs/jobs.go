package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"parkfleet/internal/models"
	"parkfleet/internal/platform"
	"parkfleet/internal/status"
)

// Reporter produces a human-readable weekly earnings summary for one
// platform.
type Reporter interface {
	Name() string
	ReportSummary(ctx context.Context) (string, error)
}

// ApplicationStore reads driver candidates for ad-hoc submission.
type ApplicationStore interface {
	Get(ctx context.Context, id int64) (*models.JobApplication, error)
}

// Jobs holds the periodic and ad-hoc job bodies. Every body isolates
// failures per platform call site: a platform outage is logged and the
// remaining platforms still run in the same cycle.
type Jobs struct {
	platforms    []platform.Synchronizer
	rent         platform.RentProvider
	reporters    []Reporter
	reconciler   *status.Reconciler
	applications ApplicationStore
	logger       *zap.Logger
}

// New builds the job set.
func New(
	platforms []platform.Synchronizer,
	rent platform.RentProvider,
	reporters []Reporter,
	reconciler *status.Reconciler,
	applications ApplicationStore,
	logger *zap.Logger,
) *Jobs {
	return &Jobs{
		platforms:    platforms,
		rent:         rent,
		reporters:    reporters,
		reconciler:   reconciler,
		applications: applications,
		logger:       logger,
	}
}

// UpdateDriverStatus is one reconciliation cycle: collect each platform's
// live snapshot and merge them into canonical driver statuses. A platform
// whose fetch fails contributes no report this cycle.
func (j *Jobs) UpdateDriverStatus(ctx context.Context) error {
	reports := make([]*status.Report, 0, len(j.platforms))
	for _, p := range j.platforms {
		report, err := p.DriverStatus(ctx)
		if err != nil {
			j.logger.Warn("driver status fetch failed", zap.String("platform", p.Name()), zap.Error(err))
			continue
		}
		j.logger.Info("driver status fetched",
			zap.String("platform", p.Name()),
			zap.Int("online", len(report.Online)),
			zap.Int("with_client", len(report.WithClient)),
		)
		reports = append(reports, report)
	}
	return j.reconciler.Reconcile(ctx, reports)
}

// UpdateDriverData runs each platform's roster/vehicle/earnings sync.
func (j *Jobs) UpdateDriverData(ctx context.Context) error {
	for _, p := range j.platforms {
		if err := p.Synchronize(ctx); err != nil {
			j.logger.Warn("data sync failed", zap.String("platform", p.Name()), zap.Error(err))
		}
	}
	return nil
}

// DownloadWeeklyReports pulls the weekly earnings report from every
// platform. Runs unlocked: it is the highest-priority pull and may overlap
// manual triggers by design.
func (j *Jobs) DownloadWeeklyReports(ctx context.Context) error {
	for _, p := range j.platforms {
		if err := p.DownloadWeeklyReport(ctx); err != nil {
			j.logger.Warn("weekly report pull failed", zap.String("platform", p.Name()), zap.Error(err))
		}
	}
	return nil
}

// DownloadDailyReports pulls yesterday's report from every platform,
// best-effort.
func (j *Jobs) DownloadDailyReports(ctx context.Context) error {
	for _, p := range j.platforms {
		if err := p.DownloadDailyReport(ctx); err != nil {
			j.logger.Warn("daily report pull failed", zap.String("platform", p.Name()), zap.Error(err))
		}
	}
	return nil
}

// RentInformation asks the tracking provider to record rent distances.
func (j *Jobs) RentInformation(ctx context.Context) error {
	if j.rent == nil {
		return nil
	}
	if err := j.rent.RentDistance(ctx); err != nil {
		j.logger.Warn("rent information failed", zap.String("platform", j.rent.Name()), zap.Error(err))
	}
	return nil
}

// WeeklyDigest logs each platform's earnings summary for the past week.
func (j *Jobs) WeeklyDigest(ctx context.Context) error {
	for _, r := range j.reporters {
		summary, err := r.ReportSummary(ctx)
		if err != nil {
			j.logger.Warn("weekly digest failed", zap.String("platform", r.Name()), zap.Error(err))
			continue
		}
		j.logger.Info("weekly digest", zap.String("platform", r.Name()), zap.String("summary", summary))
	}
	return nil
}

// SubmitApplication sends one driver candidate to the named platform. Ad
// hoc, triggered from the admin API.
func (j *Jobs) SubmitApplication(ctx context.Context, platformName string, applicationID int64) error {
	candidate, err := j.applications.Get(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application %d: %w", applicationID, err)
	}
	for _, p := range j.platforms {
		if p.Name() == platformName {
			if err := p.AddDriver(ctx, candidate); err != nil {
				return err
			}
			j.logger.Info("job application submitted",
				zap.String("platform", platformName),
				zap.Int64("application_id", applicationID),
			)
			return nil
		}
	}
	return fmt.Errorf("unknown platform %q", platformName)
}
