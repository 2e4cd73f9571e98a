package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Valid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindFolder, true},
		{KindFile, true},
		{KindImage, true},
		{"", false},
		{"video", false},
		{"Folder", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Valid(), "kind %q", tt.kind)
	}
}

func TestFileRecord_JSONHidesStorageFields(t *testing.T) {
	rec := FileRecord{
		ID:        "f1",
		UserID:    "u1",
		Name:      "a.png",
		Kind:      KindImage,
		ParentID:  "0",
		LocalPath: "/tmp/files_manager/secret",
		Seq:       9,
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Equal(t, map[string]any{
		"id":       "f1",
		"userId":   "u1",
		"name":     "a.png",
		"type":     "image",
		"isPublic": false,
		"parentId": "0",
	}, m)
}

func TestThumbnailPath(t *testing.T) {
	assert.Equal(t, "/tmp/files_manager/abc_250", ThumbnailPath("/tmp/files_manager/abc", 250))
	assert.Equal(t, []int{500, 250, 100}, ThumbnailWidths)
}
