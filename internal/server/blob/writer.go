// Package blob persists uploaded content under generated names.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/google/uuid"
)

// Writer stores blobs as flat files under Root.
type Writer struct {
	Root string
}

func NewWriter(root string) *Writer {
	return &Writer{Root: root}
}

// newName is a seam for tests.
var newName = uuid.NewString

// Write decodes content (standard base64) and stores it under a fresh name,
// returning the absolute path. The root directory is created on demand.
// The file is complete on disk before Write returns.
func (w *Writer) Write(ctx context.Context, content string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return "", common.NewValidationError("invalid data")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := filex.EnsureDir(w.Root)
	if err != nil {
		return "", fmt.Errorf("storage root: %w", err)
	}

	path := filepath.Join(root, newName())
	if err := filex.WriteFileAtomic(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return path, nil
}
