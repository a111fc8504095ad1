package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/mail"
	"github.com/redis/go-redis/v9"
)

// RedisMailQueue is a FIFO of mail jobs kept in a Redis list: producers LPUSH,
// workers BRPOP.
type RedisMailQueue struct {
	client redis.UniversalClient
	key    string
}

func NewRedisMailQueue(client redis.UniversalClient, key string) *RedisMailQueue {
	return &RedisMailQueue{client: client, key: key}
}

func (q *RedisMailQueue) Enqueue(ctx context.Context, job mail.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return q.client.LPush(ctx, q.key, raw).Err()
}

func (q *RedisMailQueue) Dequeue(ctx context.Context, wait time.Duration) (mail.Job, error) {
	res, err := q.client.BRPop(ctx, wait, q.key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return mail.Job{}, mail.ErrQueueEmpty
	case err != nil:
		return mail.Job{}, err
	}

	// res = [key, value]
	var job mail.Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return mail.Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

func (q *RedisMailQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
