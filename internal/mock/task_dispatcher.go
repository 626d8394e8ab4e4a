package mock

import (
	"context"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	PurgeCalled bool
	PurgeBucket string
	PurgeKeys   []string
	PurgeErr    error
}

func (m *MockDispatcher) EnqueuePurgeImageFiles(ctx context.Context, bucket string, objectKeys []string) error {
	m.PurgeCalled = true
	m.PurgeBucket = bucket
	m.PurgeKeys = append(m.PurgeKeys, objectKeys...)
	return m.PurgeErr
}
