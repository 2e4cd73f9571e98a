package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// FileLookup resolves the record a job refers to.
type FileLookup interface {
	FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error)
}

// Result holds the per-width outcome of a job; a nil entry means the
// derivative was written.
type Result map[int]error

type Processor struct {
	files  FileLookup
	logger logging.Logger
}

func NewProcessor(files FileLookup, logger logging.Logger) *Processor {
	return &Processor{files: files, logger: logger.With("module", "thumbnails")}
}

// Process generates every thumbnail width for job. Widths are produced
// concurrently and independently: a failing width is logged and reported in
// the Result without affecting the others. An error is returned only when
// the job cannot start at all.
func (p *Processor) Process(ctx context.Context, job models.ThumbnailJob) (Result, error) {
	if job.FileID == "" {
		return nil, common.NewMissingFieldError("fileId")
	}
	if job.UserID == "" {
		return nil, common.NewMissingFieldError("userId")
	}

	rec, err := p.files.FindByIDAndOwner(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("file not found")
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	if rec.LocalPath == "" || !filex.Exists(rec.LocalPath) {
		return nil, common.NewNotFoundError("file not found")
	}

	src, err := loadSource(rec.LocalPath)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = make(Result, len(models.ThumbnailWidths))
	)

	for _, width := range models.ThumbnailWidths {
		wg.Add(1)
		go func(width int) {
			defer wg.Done()

			start := time.Now()
			err := p.derive(src, width, models.ThumbnailPath(rec.LocalPath, width))
			observeDerivative(width, err)

			if err != nil {
				p.logger.Error(ctx, "thumbnail failed", "file_id", rec.ID, "width", width, "error", err)
			} else {
				p.logger.Debug(ctx, "thumbnail written", "file_id", rec.ID, "width", width, "took", time.Since(start))
			}

			mu.Lock()
			result[width] = err
			mu.Unlock()
		}(width)
	}

	wg.Wait()
	return result, nil
}

// derive writes one width. It runs on its own goroutine, so a panic here is
// turned into that width's error instead of taking the worker down.
func (p *Processor) derive(src *source, width int, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("thumbnail %d: panic: %v", width, r)
		}
	}()
	return writeThumbnail(src, width, path)
}
