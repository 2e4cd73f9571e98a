// Package files implements the file metadata store on PostgreSQL.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/google/uuid"
)

const selectColumns = `id, user_id, name, type, parent_id, is_public, local_path, seq`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// newID is a seam for tests.
var newID = uuid.NewString

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.FileRecord, error) {
	rec := &models.FileRecord{}
	var localPath sql.NullString
	var kind string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &kind, &rec.ParentID, &rec.IsPublic, &localPath, &rec.Seq); err != nil {
		return nil, err
	}
	rec.Kind = models.Kind(kind)
	rec.LocalPath = localPath.String
	return rec, nil
}

// validID filters out ids that can never match a uuid column, so a
// malformed id reads as "not found" instead of a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.FileRecord, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + selectColumns + ` FROM files
		 WHERE id = $1
		 `

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	if !validID(id) || !validID(userID) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + selectColumns + ` FROM files
		 WHERE id = $1 AND user_id = $2
		 `

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Insert stores rec, assigning ID when empty, and fills Seq from the store.
func (r *PostgresRepository) Insert(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error) {
	if rec.ID == "" {
		rec.ID = newID()
	}

	var localPath sql.NullString
	if rec.LocalPath != "" {
		localPath = sql.NullString{String: rec.LocalPath, Valid: true}
	}

	query :=
		`INSERT INTO files (id, user_id, name, type, parent_id, is_public, local_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING seq
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.UserID, rec.Name, string(rec.Kind), rec.ParentID, rec.IsPublic, localPath).Scan(&rec.Seq)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) UpdateIsPublic(ctx context.Context, id, userID string, value bool) (*models.FileRecord, error) {
	if !validID(id) || !validID(userID) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE files SET is_public = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + selectColumns

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// FindChildren returns the owner's records under parentID in insertion order.
func (r *PostgresRepository) FindChildren(ctx context.Context, userID, parentID string, skip, limit int) ([]*models.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files
		 WHERE user_id = $1 AND parent_id = $2
		 ORDER BY seq
		 OFFSET $3 LIMIT $4
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, parentID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.FileRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
