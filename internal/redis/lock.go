package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a SET NX PX lease shared by every replica. The token makes sure
// a holder whose lease expired cannot release somebody else's lock.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

func NewLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Locker {
	return &Locker{client: client, ttl: ttl, retry: 25 * time.Millisecond, logger: logger}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("redis.Locker.Lock %s: %w: %w", key, e.ErrLockNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("redis.Locker.Lock %s: %w", key, err)
		}
		if ok {
			break
		}

		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("redis.Locker.Lock %s: %w: %w", key, e.ErrLockNotAcquired, ctx.Err())
		case <-t.C:
		}
	}

	return func() {
		// release must run even when the caller's context is already done
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("lock release failed", slog.String("key", key), slog.Any("error", err))
		}
	}, nil
}
