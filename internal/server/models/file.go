// Package models defines server-side data models persisted in the database.
package models

import "strconv"

// Kind is the immutable type of a FileRecord.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	KindImage  Kind = "image"
)

// Valid reports whether k is one of the accepted kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// FileRecord describes a file or folder owned by a user.
type FileRecord struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Kind     Kind   `json:"type"`
	IsPublic bool   `json:"isPublic"`
	// ParentID is either the root sentinel "0" or the id of a folder.
	ParentID string `json:"parentId"`

	// LocalPath is set for every non-folder record and never leaves the server.
	LocalPath string `json:"-"`
	// Seq is the insertion sequence used to order listings.
	Seq int64 `json:"-"`
}

// IsFolder reports whether the record is a folder.
func (f *FileRecord) IsFolder() bool {
	return f.Kind == KindFolder
}

// ThumbnailWidths are the derivative widths generated for every image.
var ThumbnailWidths = []int{500, 250, 100}

// ThumbnailPath returns where the derivative of the given width is stored.
func ThumbnailPath(localPath string, width int) string {
	return localPath + "_" + strconv.Itoa(width)
}
