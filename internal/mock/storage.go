package mock

import (
	"context"
	"sync"
	"time"
)

// Storage implements the storage interface for tests.
type Storage struct {
	mu sync.Mutex

	// stored values
	ExistsOut bool

	// captured inputs
	ObjectKey string
	TTL       time.Duration
	Removed   []string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	RemoveErr               error
	// RemoveErrs fails RemoveFile for specific keys only
	RemoveErrs    map[string]error
	FileExistsErr error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	RemoveCalled               bool
	FileExistsCalled           bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	return "https://example.com/download/" + fileKey, nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalled = true
	m.Removed = append(m.Removed, fileKey)
	if err, ok := m.RemoveErrs[fileKey]; ok {
		return err
	}
	return m.RemoveErr
}

func (m *Storage) PublicURL(bucket, fileKey string) string {
	return "https://cdn.example.com/" + bucket + "/" + fileKey
}
