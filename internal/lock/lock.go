// Package lock serialises claim creation per (contractor, month) across API replicas.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"claimflow/internal/config"
)

// ErrBusy is returned when another request holds the lock past the retry budget.
var ErrBusy = errors.New("lock is held by another request")

// ReleaseFunc gives the lock back. It is safe to call once.
type ReleaseFunc func(ctx context.Context) error

// Locker hands out short exclusive leases on string keys.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// ClaimKey is the lock key guarding a contractor's month.
func ClaimKey(contractorID, monthKey string) string {
	return fmt.Sprintf("claimflow:claim:%s:%s", contractorID, monthKey)
}

type obtainer interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// RedisLocker obtains leases through redislock.
type RedisLocker struct {
	client obtainer
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker wraps an existing redis client. Acquire retries a few times before giving up.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 10),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

// Noop grants every lease immediately. Used when no Redis is configured;
// the database unique constraint still rejects duplicates.
type Noop struct{}

func (Noop) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}

// New returns a Redis-backed locker when cfg names an address, otherwise Noop.
// The returned closer shuts down the redis client, if any.
func New(ctx context.Context, cfg config.RedisConfig, log logrus.FieldLogger) (Locker, func() error, error) {
	log = log.WithField("component", "lock")
	if !cfg.Enabled() {
		log.WithField("event", "lock_disabled").Warn("REDIS_ADDRESS not set; claim creation relies on the unique constraint only")
		return Noop{}, func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	log.WithFields(logrus.Fields{
		"event":   "lock_ready",
		"address": cfg.Address,
		"ttl_sec": cfg.LockTTLSec,
	}).Info("redis lock ready")

	return NewRedisLocker(rdb, cfg.LockTTL()), rdb.Close, nil
}
