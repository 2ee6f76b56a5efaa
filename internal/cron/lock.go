package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	redispkg "github.com/Amey8050/Dukaan-clone-sub000/pkg/redis"
)

const defaultLockTTL = 30 * time.Minute

// Lock coordinates exclusive cron runs across worker instances.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// RedisLock implements Lock on the shared Redis lock namespace. One worker
// wins each cycle; the TTL frees the lock if that worker dies mid-run.
type RedisLock struct {
	locker redispkg.Locker
	name   string
	owner  string
	ttl    time.Duration
	held   bool
}

// NewRedisLock constructs a Redis-backed cron lock. The owner value names
// this worker instance in diagnostics.
func NewRedisLock(locker redispkg.Locker, name, owner string, ttl time.Duration) (*RedisLock, error) {
	if locker == nil {
		return nil, errors.New("redis locker required")
	}
	if name == "" {
		return nil, errors.New("lock name is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLock{locker: locker, name: name, owner: owner, ttl: ttl}, nil
}

// Acquire tries to own the lock for the configured TTL.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.locker.AcquireLock(ctx, l.name, l.owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("acquire cron lock: %w", err)
	}
	l.held = ok
	return ok, nil
}

// Release frees the lock if this instance holds it.
func (l *RedisLock) Release(ctx context.Context) error {
	if !l.held {
		return nil
	}
	if err := l.locker.ReleaseLock(ctx, l.name); err != nil {
		return fmt.Errorf("release cron lock: %w", err)
	}
	l.held = false
	return nil
}
