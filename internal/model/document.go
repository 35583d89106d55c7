package model

import "time"

// Document represents a stored file in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// OriginalName is whatever the uploader called the file and is used for display
// and for the downloaded filename. StoredName is generated by the service and is
// the only name that ever touches the file store, so client-supplied names can
// never influence on-disk paths.
type Document struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	StoragePath  string    `json:"storage_path"`
	CategoryID   int64     `json:"category_id"`
	Description  string    `json:"description"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// DocumentView is a Document joined with its category name, as rendered in listings.
type DocumentView struct {
	Document
	CategoryName string `json:"category_name"`
}
