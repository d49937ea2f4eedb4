package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/redis/go-redis/v9"
)

// PushQueue is a FIFO list: producers LPUSH, the sender BRPOPs.
type PushQueue struct {
	client *redis.Client
	key    string
}

func NewPushQueue(client *redis.Client, key string) *PushQueue {
	return &PushQueue{client: client, key: key}
}

func (q *PushQueue) Enqueue(ctx context.Context, msg domain.PushMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *PushQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.PushMessage, error) {
	var m domain.PushMessage

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return m, e.ErrPushQueueEmpty
		}
		return m, err
	}
	if len(res) < 2 {
		return m, e.ErrPushQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &m); err != nil {
		return m, e.Wrap("redis.PushQueue.BRPop: decode", err)
	}
	return m, nil
}

