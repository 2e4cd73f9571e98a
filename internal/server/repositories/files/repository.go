package files

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// Repository is the file metadata store.
type Repository interface {
	FindByID(ctx context.Context, id string) (*models.FileRecord, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error)
	Insert(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error)
	UpdateIsPublic(ctx context.Context, id, userID string, value bool) (*models.FileRecord, error)
	FindChildren(ctx context.Context, userID, parentID string, skip, limit int) ([]*models.FileRecord, error)
	Count(ctx context.Context) (int64, error)
}
