package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

var (
	ErrLockNotAcquired = errors.New(errors.CodeConflict, "failed to acquire lock")
	ErrLockNotHeld     = errors.New(errors.CodeConflict, "lock not held by this owner")
)

// DistributedLock is a redis-backed mutex.  The lock value is a random token
// so only the acquirer can release or extend it.
type DistributedLock interface {
	Lock(ctx context.Context) error
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
	Extend(ctx context.Context, ttl time.Duration) (bool, error)
	TTL(ctx context.Context) (time.Duration, error)
}

type LockOption func(*lockConfig)

func WithLockTTL(ttl time.Duration) LockOption {
	return func(c *lockConfig) { c.ttl = ttl }
}

func WithRetryDelay(delay time.Duration) LockOption {
	return func(c *lockConfig) { c.retryDelay = delay }
}

func WithRetryCount(count int) LockOption {
	return func(c *lockConfig) { c.retryCount = count }
}

type lockConfig struct {
	ttl        time.Duration
	retryDelay time.Duration
	retryCount int
}

// NewMutex builds a named distributed mutex.
func NewMutex(client *Client, name string, log logging.Logger, opts ...LockOption) DistributedLock {
	cfg := lockConfig{
		ttl:        30 * time.Second,
		retryDelay: 100 * time.Millisecond,
		retryCount: 30,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &redisMutex{
		client: client,
		name:   name,
		value:  uuid.New().String(),
		config: cfg,
		logger: log,
	}
}

type redisMutex struct {
	client *Client
	name   string
	value  string
	config lockConfig
	logger logging.Logger
}

var mutexUnlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var mutexExtendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

func buildLockKey(name string) string {
	return "juris:lock:" + name
}

func (m *redisMutex) Lock(ctx context.Context) error {
	key := buildLockKey(m.name)
	for i := 0; i < m.config.retryCount; i++ {
		success, err := m.client.SetNX(ctx, key, m.value, m.config.ttl).Result()
		if err == nil && success {
			return nil
		}
		if err != nil && err != redis.Nil {
			return errors.Wrap(err, errors.CodeCacheError, "failed to set lock")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.retryDelay):
			continue
		}
	}
	return ErrLockNotAcquired
}

func (m *redisMutex) TryLock(ctx context.Context) (bool, error) {
	return m.client.SetNX(ctx, buildLockKey(m.name), m.value, m.config.ttl).Result()
}

func (m *redisMutex) Unlock(ctx context.Context) error {
	res, err := mutexUnlockScript.Run(ctx, m.client.GetUnderlyingClient(), []string{buildLockKey(m.name)}, m.value).Result()
	if err != nil {
		return err
	}
	if res.(int64) == 0 {
		return ErrLockNotHeld
	}
	return nil
}

func (m *redisMutex) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	res, err := mutexExtendScript.Run(ctx, m.client.GetUnderlyingClient(),
		[]string{buildLockKey(m.name)}, m.value, ttl.Milliseconds()).Result()
	if err != nil {
		return false, err
	}
	return res.(int64) == 1, nil
}

func (m *redisMutex) TTL(ctx context.Context) (time.Duration, error) {
	return m.client.GetUnderlyingClient().PTTL(ctx, buildLockKey(m.name)).Result()
}

// SweepLocker adapts the redis mutex primitives to the scheduler's locking
// contract, so only one instance runs a deadline sweep at a time.
type SweepLocker struct {
	client *Client
	logger logging.Logger

	mu     sync.Mutex
	owners map[string]string
}

// NewSweepLocker builds a sweep locker.
func NewSweepLocker(client *Client, log logging.Logger) *SweepLocker {
	return &SweepLocker{
		client: client,
		logger: log,
		owners: make(map[string]string),
	}
}

// TryLock attempts a non-blocking acquire of the named lock.
func (l *SweepLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	value := uuid.New().String()
	acquired, err := l.client.SetNX(ctx, buildLockKey(key), value, ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.CodeCacheError, "failed to acquire sweep lock")
	}
	if acquired {
		l.mu.Lock()
		l.owners[key] = value
		l.mu.Unlock()
	}
	return acquired, nil
}

// Unlock releases the named lock if this locker still owns it.
func (l *SweepLocker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	value, ok := l.owners[key]
	delete(l.owners, key)
	l.mu.Unlock()
	if !ok {
		return ErrLockNotHeld
	}

	res, err := mutexUnlockScript.Run(ctx, l.client.GetUnderlyingClient(), []string{buildLockKey(key)}, value).Result()
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to release sweep lock")
	}
	if res.(int64) == 0 {
		// Expired and possibly taken over; nothing left to release.
		l.logger.Warn("sweep lock expired before release", logging.String("key", key))
	}
	return nil
}

//Personal.AI order the ending
