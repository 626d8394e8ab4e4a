package image

import (
	"context"
	"fmt"
	"log"

	"github.com/fhuszti/katasu-ms-go/internal/port"
	"golang.org/x/sync/errgroup"
)

// maxParallelRemovals bounds concurrent object deletions per purge.
const maxParallelRemovals = 4

type filePurgerSrv struct {
	strg port.Storage
}

func NewFilePurger(strg port.Storage) port.FilePurger {
	return &filePurgerSrv{strg: strg}
}

// PurgeFiles removes every object key from the bucket. Missing objects are not errors.
func (s *filePurgerSrv) PurgeFiles(ctx context.Context, in port.PurgeFilesInput) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRemovals)

	for _, key := range in.ObjectKeys {
		g.Go(func() error {
			if err := s.strg.RemoveFile(gctx, in.Bucket, key); err != nil {
				return fmt.Errorf("remove %q from bucket %q: %w", key, in.Bucket, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("purged %d file(s) from bucket %q", len(in.ObjectKeys), in.Bucket)
	return nil
}
