package worker

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/task"
)

// PurgeImageFilesHandler handles a purge-image-files task.
// It converts the task payload to the input expected by the
// port.FilePurger service and delegates the call.
func PurgeImageFilesHandler(ctx context.Context, p task.PurgeImageFilesPayload, svc port.FilePurger) error {
	in := port.PurgeFilesInput{Bucket: p.Bucket, ObjectKeys: p.ObjectKeys}
	if err := svc.PurgeFiles(ctx, in); err != nil {
		logger.Errorf(ctx, "❌  Failed to purge %d file(s) from bucket %q: %v", len(p.ObjectKeys), p.Bucket, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully purged %d file(s) from bucket %q", len(p.ObjectKeys), p.Bucket)
	return nil
}
