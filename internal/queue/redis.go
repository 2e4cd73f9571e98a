// Package queue carries thumbnail jobs from the API to the workers over a
// Redis list: producers LPUSH, consumers BRPOP.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmpty is returned by Dequeue when no job arrived before the timeout.
	ErrEmpty = errors.New("queue empty")
	// ErrMalformed wraps payloads that do not decode into a job.
	ErrMalformed = errors.New("malformed job")
)

type RedisQueue struct {
	client redis.UniversalClient
	name   string
}

func NewRedisQueue(client redis.UniversalClient, name string) *RedisQueue {
	return &RedisQueue{client: client, name: name}
}

func (q *RedisQueue) Name() string { return q.name }

func (q *RedisQueue) Enqueue(ctx context.Context, job models.ThumbnailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.LPush(ctx, q.name, string(payload)).Err(); err != nil {
		return fmt.Errorf("redis lpush: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job. It returns ErrEmpty on
// timeout and an error wrapping ErrMalformed, with the raw payload, when the
// entry cannot be decoded; such entries are already removed from the list.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.ThumbnailJob, error) {
	res, err := q.client.BRPop(ctx, timeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("redis brpop: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("%w: unexpected reply %q", ErrMalformed, res)
	}

	job := &models.ThumbnailJob{}
	if err := json.Unmarshal([]byte(res[1]), job); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, res[1], err)
	}
	return job, nil
}

// Len reports the number of pending jobs.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.name).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen: %w", err)
	}
	return n, nil
}
