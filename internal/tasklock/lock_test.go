package tasklock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAcquireExcludesSecondCaller(t *testing.T) {
	cache := NewMemoryCache()
	first := NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	second := NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	ctx := context.Background()

	guard, err := first.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.True(t, guard.Acquired())

	other, err := second.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.False(t, other.Acquired(), "second acquire must skip, not block")
}

func TestAcquireDifferentKeysIndependent(t *testing.T) {
	cache := NewMemoryCache()
	locker := NewLocker(cache, 10*time.Minute, 10*time.Second, zap.NewNop())
	ctx := context.Background()

	a, err := locker.Acquire(ctx, "job-a")
	require.NoError(t, err)
	b, err := locker.Acquire(ctx, "job-b")
	require.NoError(t, err)

	assert.True(t, a.Acquired())
	assert.True(t, b.Acquired())
}

func TestReleaseShrinksToCooldown(t *testing.T) {
	cache := NewMemoryCache()
	locker := NewLocker(cache, 10*time.Minute, 50*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	guard, err := locker.Acquire(ctx, "job-x")
	require.NoError(t, err)
	require.True(t, guard.Acquired())
	guard.Release(ctx)

	// Inside the cooldown window the entry still throttles re-entry.
	blocked, err := locker.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.False(t, blocked.Acquired())

	time.Sleep(80 * time.Millisecond)

	again, err := locker.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.True(t, again.Acquired(), "cooldown expired, next cycle may run")
}

func TestReleaseAfterDeadlineLeavesEntry(t *testing.T) {
	cache := NewMemoryCache()
	// Expiry below the release margin puts the deadline in the past
	// immediately, modelling a run that outlived its lock.
	locker := NewLocker(cache, time.Second, 10*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	guard, err := locker.Acquire(ctx, "job-x")
	require.NoError(t, err)
	require.True(t, guard.Acquired())
	guard.Release(ctx)

	time.Sleep(30 * time.Millisecond)

	// The entry kept its original expiry, so it still blocks: Release must
	// not touch a lock that may have been re-acquired by another worker.
	blocked, err := locker.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.False(t, blocked.Acquired())
}

func TestReleaseWithoutAcquisitionIsNoop(t *testing.T) {
	cache := NewMemoryCache()
	holder := NewLocker(cache, 10*time.Minute, 10*time.Millisecond, zap.NewNop())
	loser := NewLocker(cache, 10*time.Minute, 10*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	held, err := holder.Acquire(ctx, "job-x")
	require.NoError(t, err)
	require.True(t, held.Acquired())

	lost, err := loser.Acquire(ctx, "job-x")
	require.NoError(t, err)
	require.False(t, lost.Acquired())
	lost.Release(ctx)

	time.Sleep(30 * time.Millisecond)

	// A loser's Release must not shrink the holder's entry.
	stillBlocked, err := loser.Acquire(ctx, "job-x")
	require.NoError(t, err)
	assert.False(t, stillBlocked.Acquired())
}
