package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkfleet/internal/tasklock"
)

func newTestScheduler(t *testing.T, cache tasklock.Cache) *Scheduler {
	t.Helper()
	locker := tasklock.NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	return New(locker, time.UTC, zap.NewNop())
}

func TestRunJobLockedRunsWhenFree(t *testing.T) {
	s := newTestScheduler(t, tasklock.NewMemoryCache())

	ran := 0
	s.runJob(context.Background(), JobSpec{
		Name:   "update_driver_status",
		Locked: true,
		Run: func(context.Context) error {
			ran++
			return nil
		},
	})

	assert.Equal(t, 1, ran)
}

func TestRunJobLockedSkipsWhenHeld(t *testing.T) {
	cache := tasklock.NewMemoryCache()
	holder := tasklock.NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	guard, err := holder.Acquire(context.Background(), "tasklock:update_driver_status")
	require.NoError(t, err)
	require.True(t, guard.Acquired())

	s := newTestScheduler(t, cache)

	ran := 0
	s.runJob(context.Background(), JobSpec{
		Name:   "update_driver_status",
		Locked: true,
		Run: func(context.Context) error {
			ran++
			return nil
		},
	})

	assert.Zero(t, ran, "a held lock means the whole cycle is skipped")
}

func TestRunJobUnlockedIgnoresLock(t *testing.T) {
	cache := tasklock.NewMemoryCache()
	holder := tasklock.NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	guard, err := holder.Acquire(context.Background(), "tasklock:download_weekly_report_force")
	require.NoError(t, err)
	require.True(t, guard.Acquired())

	s := newTestScheduler(t, cache)

	ran := 0
	s.runJob(context.Background(), JobSpec{
		Name:   "download_weekly_report_force",
		Locked: false,
		Run: func(context.Context) error {
			ran++
			return nil
		},
	})

	assert.Equal(t, 1, ran)
}

func TestRunJobSwallowsErrors(t *testing.T) {
	s := newTestScheduler(t, tasklock.NewMemoryCache())

	assert.NotPanics(t, func() {
		s.runJob(context.Background(), JobSpec{
			Name:   "update_driver_data",
			Locked: true,
			Run: func(context.Context) error {
				return errors.New("platform console changed")
			},
		})
	})
}

func TestRunJobReleasesLockForNextCycle(t *testing.T) {
	locker := tasklock.NewLocker(tasklock.NewMemoryCache(), 10*time.Minute, 20*time.Millisecond, zap.NewNop())
	s := New(locker, time.UTC, zap.NewNop())

	ran := 0
	spec := JobSpec{
		Name:   "update_driver_status",
		Locked: true,
		Run:    func(context.Context) error { ran++; return nil },
	}

	s.runJob(context.Background(), spec)
	// Immediately after a run the cooldown still blocks re-entry.
	s.runJob(context.Background(), spec)
	assert.Equal(t, 1, ran)

	time.Sleep(40 * time.Millisecond)
	s.runJob(context.Background(), spec)
	assert.Equal(t, 2, ran)
}

func TestRegisterRejectsBadSchedule(t *testing.T) {
	s := newTestScheduler(t, tasklock.NewMemoryCache())

	err := s.Register([]JobSpec{{
		Name:     "broken",
		Schedule: "not a schedule",
		Run:      func(context.Context) error { return nil },
	}})
	require.Error(t, err)
}
