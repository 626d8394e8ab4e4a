package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to image housekeeping.
type TaskDispatcher interface {
	EnqueuePurgeImageFiles(ctx context.Context, bucket string, objectKeys []string) error
}
