package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafflehub/rafflehub/internal/shared/id"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

const (
	raffleLockKeyPrefix = "raffle:lock:"
	pollInterval        = 20 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a RaffleLocker shared by every instance using the same Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger logger.Interface
}

// NewRedisLocker creates a locker whose keys expire after ttl and whose
// Acquire polls for at most wait.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, log logger.Interface) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if wait <= 0 {
		wait = ttl
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: log,
	}
}

func (l *RedisLocker) key(raffleID uint) string {
	return fmt.Sprintf("%s%d", raffleLockKeyPrefix, raffleID)
}

func (l *RedisLocker) Acquire(ctx context.Context, raffleID uint) (ReleaseFunc, error) {
	token, err := id.Generate(id.DefaultLength)
	if err != nil {
		return nil, err
	}
	key := l.key(raffleID)
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire raffle lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (l *RedisLocker) releaser(key, token string) ReleaseFunc {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Release must run even when the caller's context is already cancelled.
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				l.logger.Warnw("failed to release raffle lock", "key", key, "error", err)
			}
		})
	}
}
