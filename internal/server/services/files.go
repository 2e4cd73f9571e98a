package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var enqueueFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "thumbnail_enqueue_failures_total",
	Help: "Image uploads whose thumbnail job could not be enqueued.",
})

// BlobWriter persists uploaded content and returns its local path.
type BlobWriter interface {
	Write(ctx context.Context, content string) (string, error)
}

// JobQueue accepts thumbnail jobs.
type JobQueue interface {
	Enqueue(ctx context.Context, job models.ThumbnailJob) error
}

// CreateFileInput is a validated-on-entry upload request. Data is the
// base64 content and is ignored for folders.
type CreateFileInput struct {
	Name     string
	Kind     models.Kind
	ParentID string
	IsPublic bool
	Data     string
}

// Content locates the bytes served for a file.
type Content struct {
	Path        string
	ContentType string
}

type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobWriter
	queue       JobQueue
	logger      logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobWriter, queue JobQueue, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		queue:       queue,
		logger:      logger.With("module", "files"),
	}
}

// CreateFile validates in, stores the content of non-folders and commits the
// record. Image uploads get a thumbnail job once the record is committed;
// failing to enqueue it is logged and does not fail the upload.
func (s *FileService) CreateFile(ctx context.Context, userID string, in CreateFileInput) (*models.FileRecord, error) {
	if in.Name == "" {
		return nil, common.NewValidationError("missing name")
	}
	if !in.Kind.Valid() {
		return nil, common.NewValidationError("missing type")
	}
	if in.Kind != models.KindFolder && in.Data == "" {
		return nil, common.NewValidationError("missing data")
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = common.RootParentID
	}

	repo := s.repomanager.Files(s.db)

	if parentID != common.RootParentID {
		parent, err := repo.FindByIDAndOwner(ctx, parentID, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.NewNotFoundError("parent not found")
			}
			return nil, fmt.Errorf("find parent: %w", err)
		}
		if !parent.IsFolder() {
			return nil, common.NewValidationError("parent not a folder")
		}
	}

	rec := &models.FileRecord{
		UserID:   userID,
		Name:     in.Name,
		Kind:     in.Kind,
		ParentID: parentID,
		IsPublic: in.IsPublic,
	}

	if in.Kind != models.KindFolder {
		path, err := s.blobs.Write(ctx, in.Data)
		if err != nil {
			return nil, err
		}
		rec.LocalPath = path
	}

	saved, err := repo.Insert(ctx, rec)
	if err != nil {
		s.discardBlob(ctx, rec)
		return nil, fmt.Errorf("insert file: %w", err)
	}
	rec = saved

	if rec.Kind == models.KindImage {
		job := models.ThumbnailJob{FileID: rec.ID, UserID: userID}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			enqueueFailuresTotal.Inc()
			s.logger.Error(ctx, "thumbnail enqueue failed", "file_id", rec.ID, "error", err)
		}
	}

	return rec, nil
}

// discardBlob removes a blob whose record never made it to the store.
func (s *FileService) discardBlob(ctx context.Context, rec *models.FileRecord) {
	if rec.LocalPath == "" {
		return
	}
	if err := os.Remove(rec.LocalPath); err != nil && !filex.IsNotExist(err) {
		s.logger.Warn(ctx, "orphan blob left behind", "path", rec.LocalPath, "error", err)
	}
}

func (s *FileService) GetFile(ctx context.Context, userID, fileID string) (*models.FileRecord, error) {
	rec, err := s.repomanager.Files(s.db).FindByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("not found")
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return rec, nil
}

// ListFiles returns one page of the caller's records under parentID.
// An empty parentID means the root; negative pages read as page 0.
func (s *FileService) ListFiles(ctx context.Context, userID, parentID string, page int) ([]*models.FileRecord, error) {
	if parentID == "" {
		parentID = common.RootParentID
	}
	if page < 0 {
		page = 0
	}

	recs, err := s.repomanager.Files(s.db).FindChildren(ctx, userID, parentID, page*common.PageSize, common.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return recs, nil
}

func (s *FileService) SetPublic(ctx context.Context, userID, fileID string, value bool) (*models.FileRecord, error) {
	rec, err := s.repomanager.Files(s.db).UpdateIsPublic(ctx, fileID, userID, value)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("not found")
		}
		return nil, fmt.Errorf("update file: %w", err)
	}
	return rec, nil
}

// CanRead reports whether userID (empty for anonymous callers) may read rec.
func CanRead(userID string, rec *models.FileRecord) bool {
	if rec.IsPublic {
		return true
	}
	return userID != "" && userID == rec.UserID
}

// ResolveContent locates the bytes of a file, or of one of its thumbnails
// when size is set. Records the caller may not read are reported as absent.
func (s *FileService) ResolveContent(ctx context.Context, userID, fileID, size string) (*Content, error) {
	rec, err := s.repomanager.Files(s.db).FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("not found")
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	if !CanRead(userID, rec) {
		return nil, common.NewNotFoundError("not found")
	}

	if rec.IsFolder() {
		return nil, common.NewValidationError("folder has no content")
	}

	path := rec.LocalPath
	if size != "" {
		width, err := parseWidth(size)
		if err != nil {
			return nil, err
		}
		path = models.ThumbnailPath(rec.LocalPath, width)
	}

	if !filex.Exists(path) {
		return nil, common.NewNotFoundError("not found")
	}

	return &Content{Path: path, ContentType: contentType(rec.Name)}, nil
}

func parseWidth(size string) (int, error) {
	width, err := strconv.Atoi(size)
	if err == nil {
		for _, w := range models.ThumbnailWidths {
			if w == width {
				return width, nil
			}
		}
	}
	return 0, common.NewValidationError("invalid size")
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
