// Package lock provides short-lived keyed locks used to keep a single generation in flight per lesson.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLocked is returned by TryLock when another owner holds the key
var ErrLocked = errors.New("lock is held by another owner")

// Releaser releases an acquired lock. Releasing a lock that expired and was taken by another owner is a no-op.
type Releaser func(ctx context.Context) error

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker creates a locker shared by every process connected to the same Redis
func NewRedisLocker(client *redis.Client, prefix string) *redisLocker {
	return &redisLocker{
		client: client,
		prefix: prefix,
	}
}

// TryLock acquires key for ttl without waiting
func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (Releaser, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release lock %s: %w", fullKey, err)
		}
		return nil
	}, nil
}

type memoryEntry struct {
	token   string
	expires time.Time
}

type memoryLocker struct {
	mu   sync.Mutex
	held map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryLocker creates a process-local locker, used when Redis is not configured
func NewMemoryLocker() *memoryLocker {
	return &memoryLocker{
		held: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// TryLock acquires key for ttl without waiting
func (l *memoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (Releaser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if entry, ok := l.held[key]; ok && now.Before(entry.expires) {
		return nil, ErrLocked
	}

	token := uuid.NewString()
	l.held[key] = memoryEntry{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if entry, ok := l.held[key]; ok && entry.token == token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
