package models

// ThumbnailJob asks the worker to derive thumbnails for an image upload.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}
