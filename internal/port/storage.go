package port

import (
	"context"
	"time"
)

// Storage defines the object storage operations used for image blobs.
type Storage interface {
	InitBucket(bucket string) error
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	PublicURL(bucket, fileKey string) string
}
