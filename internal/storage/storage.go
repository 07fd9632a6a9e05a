package storage

import (
	"context"
	"io"
	"time"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	KeyPrefix   string
	ContentType string
	// FileName influences the stored key; a random suffix is always added.
	FileName string
}

// Service stores user-supplied images (avatars, banners, post attachments)
// in remote object storage.
type Service interface {
	UploadImage(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	ObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
