package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

const (
	dequeueTimeout = 5 * time.Second
	retryBackoff   = time.Second
)

// JobSource hands out queued jobs.
type JobSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*models.ThumbnailJob, error)
}

// JobProcessor runs a single job.
type JobProcessor interface {
	Process(ctx context.Context, job models.ThumbnailJob) (Result, error)
}

type consumer struct {
	source    JobSource
	processor JobProcessor
	logger    logging.Logger
}

// run pulls jobs until ctx is cancelled. Queue errors are retried after a
// short pause; they never stop the consumer.
func (c *consumer) run(ctx context.Context) error {
	c.logger.Info(ctx, "consumer started")
	defer c.logger.Info(ctx, "consumer stopped")

	for ctx.Err() == nil {
		job, err := c.source.Dequeue(ctx, dequeueTimeout)
		switch {
		case err == nil:
			c.handle(ctx, *job)
		case errors.Is(err, queue.ErrEmpty):
		case errors.Is(err, queue.ErrMalformed):
			jobsTotal.WithLabelValues(stateMalformed).Inc()
			c.logger.Warn(ctx, "dropping malformed job", "error", err)
		case ctx.Err() != nil:
			return nil
		default:
			c.logger.Error(ctx, "dequeue failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}
		}
	}
	return nil
}

// handle processes one job. Panics are recovered and count as failures.
func (c *consumer) handle(ctx context.Context, job models.ThumbnailJob) {
	start := time.Now()
	state := stateFailed

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "job panicked", "file_id", job.FileID, "panic", fmt.Sprint(r))
			state = stateFailed
		}
		jobsTotal.WithLabelValues(state).Inc()
		jobDuration.Observe(time.Since(start).Seconds())
	}()

	result, err := c.processor.Process(ctx, job)
	if err != nil {
		c.logger.Error(ctx, "job failed", "file_id", job.FileID, "user_id", job.UserID, "error", err)
		return
	}

	failed := 0
	for _, e := range result {
		if e != nil {
			failed++
		}
	}

	state = stateCompleted
	c.logger.Info(ctx, "job completed", "file_id", job.FileID, "widths", len(result), "failed", failed, "took", time.Since(start))
}
