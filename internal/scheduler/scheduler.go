package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"parkfleet/internal/observability"
	"parkfleet/internal/tasklock"
)

// JobSpec is one row of the declarative job table: what runs, when, and
// whether cycles are capped to one concurrent execution across the pool.
type JobSpec struct {
	Name     string
	Schedule string
	Locked   bool
	Run      func(ctx context.Context) error
}

// Scheduler evaluates the job table on cron/interval cadences. A job's error
// is logged and swallowed; nothing a job does can stop the scheduler or
// block other jobs in the same cycle.
type Scheduler struct {
	cron   *cron.Cron
	locker *tasklock.Locker
	logger *zap.Logger
}

// New builds a scheduler whose cron times are evaluated in loc.
func New(locker *tasklock.Locker, loc *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		locker: locker,
		logger: logger,
	}
}

// Register adds the job table. Schedules accept standard five-field cron
// specs and @every intervals.
func (s *Scheduler) Register(specs []JobSpec) error {
	for _, spec := range specs {
		spec := spec
		if _, err := s.cron.AddFunc(spec.Schedule, func() {
			s.runJob(context.Background(), spec)
		}); err != nil {
			return fmt.Errorf("scheduler: register %s (%q): %w", spec.Name, spec.Schedule, err)
		}
	}
	return nil
}

func (s *Scheduler) runJob(ctx context.Context, spec JobSpec) {
	if spec.Locked {
		guard, err := s.locker.Acquire(ctx, "tasklock:"+spec.Name)
		if err != nil {
			observability.JobsFailed.WithLabelValues(spec.Name).Inc()
			s.logger.Error("job lock error", zap.String("job", spec.Name), zap.Error(err))
			return
		}
		if !guard.Acquired() {
			observability.JobsSkipped.WithLabelValues(spec.Name).Inc()
			s.logger.Info("job skipped, lock held", zap.String("job", spec.Name))
			return
		}
		defer guard.Release(ctx)
	}

	observability.JobsStarted.WithLabelValues(spec.Name).Inc()
	start := time.Now()
	if err := spec.Run(ctx); err != nil {
		observability.JobsFailed.WithLabelValues(spec.Name).Inc()
		s.logger.Error("job failed", zap.String("job", spec.Name), zap.Error(err))
	}
	observability.JobDuration.WithLabelValues(spec.Name).Observe(time.Since(start).Seconds())
}

// Start begins firing jobs on their cadences.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
