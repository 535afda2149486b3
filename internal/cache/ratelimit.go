package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	submissionKeyPrefix = "userdesk:submissions:"
	sweepInterval       = 5 * time.Minute
)

// SubmissionLimiter caps form submissions per key (session id) in a fixed window.
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close()
}

type redisLimiter struct {
	client *RedisClient
	limit  int
	window time.Duration
}

// NewRedisLimiter shares the submission budget across every console instance.
func NewRedisLimiter(client *RedisClient, limit int, window time.Duration) SubmissionLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &redisLimiter{client: client, limit: limit, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	redisKey := submissionKeyPrefix + key

	// EXPIRE NX runs on every call so a key whose first EXPIRE was lost still
	// gets a TTL. Requires Redis 7.
	var incr *redis.IntCmd
	_, err := l.client.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	count := incr.Val()
	return count <= int64(l.limit), nil
}

// Close is a no-op; the redis client is owned by the caller.
func (l *redisLimiter) Close() {}

type memoryLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]windowState
	stopCh  chan struct{}
	once    sync.Once
}

type windowState struct {
	count     int
	windowEnd time.Time
}

// NewMemoryLimiter keeps counters in process; used when redis is disabled.
func NewMemoryLimiter(limit int, window time.Duration) SubmissionLimiter {
	if window <= 0 {
		window = time.Minute
	}
	l := &memoryLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]windowState),
		stopCh:  make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

func (l *memoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.entries[key]
	if !ok || now.After(state.windowEnd) {
		l.entries[key] = windowState{count: 1, windowEnd: now.Add(l.window)}
		return true, nil
	}
	if state.count >= l.limit {
		return false, nil
	}
	state.count++
	l.entries[key] = state
	return true, nil
}

func (l *memoryLimiter) Close() {
	l.once.Do(func() { close(l.stopCh) })
}

func (l *memoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *memoryLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, state := range l.entries {
		if now.After(state.windowEnd) {
			delete(l.entries, key)
		}
	}
}
