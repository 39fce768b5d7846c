package storage

import (
	"context"
	"io"
)

// UploadResult describes where a stored object ended up. Location is the
// public URL handed back to API clients; Key is what Delete expects.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores and removes logo files. The services only ever see this
// interface; a nil uploader means file storage is not configured and upload
// endpoints reject requests instead of failing at startup.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL resolves a stored key to its public URL without touching
	// the backing store.
	GetPublicURL(key string) string
}
