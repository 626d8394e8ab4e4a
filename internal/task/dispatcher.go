package task

import (
	"context"
	"log"

	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueuePurgeImageFiles(ctx context.Context, bucket string, objectKeys []string) error {
	t, err := NewPurgeImageFilesTask(bucket, objectKeys)
	if err != nil {
		return err
	}
	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return err
	}
	log.Printf("enqueued task %s to purge %d file(s) from bucket %q", info.ID, len(objectKeys), bucket)
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
