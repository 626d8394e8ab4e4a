package task

import (
	"context"
	"errors"

	"github.com/fhuszti/katasu-ms-go/internal/port"
)

// ErrDispatchDisabled is returned when no task queue is configured; callers run the work inline.
var ErrDispatchDisabled = errors.New("task dispatch disabled")

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueuePurgeImageFiles(ctx context.Context, bucket string, objectKeys []string) error {
	return ErrDispatchDisabled
}
