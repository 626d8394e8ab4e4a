package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/task"
)

type deleteImageSrv struct {
	repo   port.ImageRepository
	cache  port.Cache
	tasks  port.TaskDispatcher
	purger port.FilePurger
}

// NewImageDeleter constructs an ImageDeleter. File removal goes through the task
// queue and falls back to an inline purge when the queue is unavailable.
func NewImageDeleter(repo port.ImageRepository, c port.Cache, tasks port.TaskDispatcher, strg port.Storage) port.ImageDeleter {
	return &deleteImageSrv{repo: repo, cache: c, tasks: tasks, purger: NewFilePurger(strg)}
}

// DeleteImage removes an image owned by the caller, its files and every cache
// entry that may still show it. Cache invalidation has finished when it returns.
func (s *deleteImageSrv) DeleteImage(ctx context.Context, in port.DeleteImageInput) error {
	img, err := s.repo.GetByID(ctx, in.ImageID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load image #%s: %w", in.ImageID, err)
	}
	if img.UserID != in.AuthUserID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, img.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete image #%s: %w", img.ID, err)
	}

	s.purge(ctx, img)
	s.invalidate(ctx, img)

	logger.Infof(ctx, "deleted image #%s of user #%s", img.ID, img.UserID)
	return nil
}

func (s *deleteImageSrv) purge(ctx context.Context, img *model.Image) {
	keys := img.ObjectKeys()
	err := s.tasks.EnqueuePurgeImageFiles(ctx, img.Bucket, keys)
	if err == nil {
		return
	}
	if !errors.Is(err, task.ErrDispatchDisabled) {
		logger.Warnf(ctx, "could not enqueue purge of image #%s, purging inline: %v", img.ID, err)
	}
	if err := s.purger.PurgeFiles(ctx, port.PurgeFilesInput{Bucket: img.Bucket, ObjectKeys: keys}); err != nil {
		// the row is gone: leftover objects are orphans, not a failed delete
		logger.Errorf(ctx, "failed to purge files of image #%s: %v", img.ID, err)
	}
}

// invalidate drops the image entry, then the owner's listings, each tag
// listing the image appeared in and finally the image's own tag.
func (s *deleteImageSrv) invalidate(ctx context.Context, img *model.Image) {
	uid := img.UserID
	cache.Invalidate(ctx, s.cache, cache.ImageKey(img.ID))
	cache.RevalidateTag(ctx, s.cache, cache.UserTag(uid))

	seen := make(map[string]struct{}, len(img.Tags))
	for _, t := range img.Tags {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		cache.RevalidateTag(ctx, s.cache, cache.UserTagTag(uid, t.ID))
	}

	cache.RevalidateTag(ctx, s.cache, cache.UserImageTag(uid, img.ID))
}
