package tasklock

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// releaseMargin keeps Release from touching an entry that may already have
// expired and been re-acquired by another worker.
const releaseMargin = 3 * time.Second

// Locker is an advisory, cache-backed mutual exclusion primitive for
// periodic jobs. Acquisition is non-blocking: a failed acquire is a normal
// skip signal, not an error, and callers must skip their work for the cycle.
type Locker struct {
	cache    Cache
	owner    string
	expire   time.Duration
	cooldown time.Duration
	logger   *zap.Logger
}

// NewLocker builds a locker. expire bounds how long a crashed holder can
// block the job; cooldown is the minimum gap enforced between consecutive
// runs of the same job.
func NewLocker(cache Cache, expire, cooldown time.Duration, logger *zap.Logger) *Locker {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &Locker{
		cache:    cache,
		owner:    fmt.Sprintf("%s-%d", host, os.Getpid()),
		expire:   expire,
		cooldown: cooldown,
		logger:   logger,
	}
}

// Guard is the result of one acquisition attempt. Release must be called on
// scope exit regardless of whether the lock was acquired.
type Guard struct {
	locker   *Locker
	key      string
	acquired bool
	deadline time.Time
}

// Acquire attempts to take the lock for key. The returned guard reports
// whether the caller holds the lock for this cycle.
func (l *Locker) Acquire(ctx context.Context, key string) (*Guard, error) {
	ok, err := l.cache.Add(ctx, key, l.owner, l.expire)
	if err != nil {
		return nil, fmt.Errorf("tasklock: acquire %s: %w", key, err)
	}
	return &Guard{
		locker:   l,
		key:      key,
		acquired: ok,
		deadline: time.Now().Add(l.expire - releaseMargin),
	}, nil
}

// Acquired reports whether this guard holds the lock.
func (g *Guard) Acquired() bool { return g.acquired }

// Release shrinks the entry's TTL to the cooldown window instead of deleting
// it. This is a deliberate throttle: back-to-back re-entry of the same job is
// held off for the cooldown even if the scheduler fires again immediately.
// It is not a semantic unlock. Past the expiry deadline the entry is left
// alone, since it may already belong to another worker.
func (g *Guard) Release(ctx context.Context) {
	if !g.acquired || !time.Now().Before(g.deadline) {
		return
	}
	if err := g.locker.cache.Set(ctx, g.key, g.locker.owner, g.locker.cooldown); err != nil {
		g.locker.logger.Warn("tasklock: cooldown set failed",
			zap.String("key", g.key),
			zap.Error(err),
		)
	}
}
