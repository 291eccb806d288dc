package model

import "time"

// Document represents a stored file owned by a user.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	StoragePath string    `json:"-"`
	Size        int64     `json:"size"`
	FileType    string    `json:"fileType"`
	CreatedAt   time.Time `json:"createdAt"`
}
