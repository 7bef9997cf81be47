package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rently/backend/internal/infrastructure/config"
)

// ScanLock guards a notification scan so that only one process runs it at a time.
type ScanLock interface {
	// Acquire returns true if the caller now holds the lock.
	Acquire(ctx context.Context) (bool, error)
	// Release frees the lock so the next scan can acquire it.
	Release(ctx context.Context) error
}

// RedisScanLock implements ScanLock with a Redis SETNX key.
// This is suitable for distributed deployments where multiple instances
// would otherwise scan the same leases concurrently.
type RedisScanLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisScanLock connects to Redis and returns a lock with the given TTL.
// The TTL bounds how long a crashed holder can block other instances.
func NewRedisScanLock(cfg config.RedisConfig, ttl time.Duration) (*RedisScanLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisScanLockWithClient(client, ttl), nil
}

// NewRedisScanLockWithClient wraps an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisScanLockWithClient(client *redis.Client, ttl time.Duration) *RedisScanLock {
	return &RedisScanLock{
		client: client,
		key:    "scheduler:scan:lock",
		ttl:    ttl,
	}
}

// Acquire sets the lock key if it does not exist yet.
func (l *RedisScanLock) Acquire(ctx context.Context) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	return acquired, nil
}

// Release deletes the lock key.
func (l *RedisScanLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("failed to release scan lock: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (l *RedisScanLock) Close() error {
	return l.client.Close()
}

// LocalScanLock implements ScanLock with an in-process mutex.
// Single-instance deployments can use it instead of Redis.
type LocalScanLock struct {
	mu sync.Mutex
}

// NewLocalScanLock returns an in-process scan lock.
func NewLocalScanLock() *LocalScanLock {
	return &LocalScanLock{}
}

// Acquire returns true if no scan currently holds the lock.
func (l *LocalScanLock) Acquire(_ context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release frees the lock. It must only be called after a successful Acquire.
func (l *LocalScanLock) Release(_ context.Context) error {
	l.mu.Unlock()
	return nil
}

var (
	_ ScanLock = (*RedisScanLock)(nil)
	_ ScanLock = (*LocalScanLock)(nil)
)
