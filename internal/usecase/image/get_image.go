package image

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type imageGetterSrv struct {
	repo      port.ImageRepository
	cache     port.Cache
	strg      port.Storage
	ttl       time.Duration
	urlExpiry time.Duration
}

// NewImageGetter builds the cached image detail reader. urlExpiry must outlive
// ttl so that a cached entry never hands out a dead link.
func NewImageGetter(repo port.ImageRepository, c port.Cache, strg port.Storage, ttl, urlExpiry time.Duration) port.ImageGetter {
	return &imageGetterSrv{repo: repo, cache: c, strg: strg, ttl: ttl, urlExpiry: urlExpiry}
}

func (s *imageGetterSrv) GetImage(ctx context.Context, id string) result.Result[*port.ImageOutput] {
	policy := cache.Policy[*port.ImageOutput]{
		TTL:     s.ttl,
		TagsFor: imageTags,
	}
	return cache.GetCached(ctx, s.cache, cache.ImageKey(id), policy, func(ctx context.Context) result.Result[*port.ImageOutput] {
		return s.load(ctx, id)
	})
}

func (s *imageGetterSrv) load(ctx context.Context, id string) result.Result[*port.ImageOutput] {
	img, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return result.NotFound[*port.ImageOutput]("image not found")
	}
	if err != nil {
		logger.Errorf(ctx, "failed to load image #%s: %v", id, err)
		return result.Fail[*port.ImageOutput]("could not load image")
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, img.Bucket, img.ObjectKey, s.urlExpiry)
	if err != nil {
		logger.Errorf(ctx, "failed to sign url of image #%s: %v", id, err)
		return result.Fail[*port.ImageOutput]("could not sign image url")
	}

	return result.Ok(toOutput(img, url))
}

func toOutput(img *model.Image, url string) *port.ImageOutput {
	p := placeholderOf(img)
	out := &port.ImageOutput{
		ID:           img.ID,
		UserID:       img.UserID,
		Title:        img.Title,
		URL:          url,
		Width:        img.Width,
		Height:       img.Height,
		Placeholder:  p.dataURL,
		Luminance:    p.luminance,
		AverageColor: p.averageColor,
		Tags:         make([]port.TagRef, 0, len(img.Tags)),
		CreatedAt:    img.CreatedAt,
	}
	if img.Thumbhash != nil {
		out.Thumbhash = *img.Thumbhash
	}
	for _, t := range img.Tags {
		out.Tags = append(out.Tags, port.TagRef{ID: t.ID, Name: t.Name})
	}
	return out
}

// imageTags ties an image entry to its owner, itself and each of its tags.
func imageTags(out *port.ImageOutput) []string {
	tags := []string{cache.UserTag(out.UserID), cache.UserImageTag(out.UserID, out.ID)}
	for _, t := range out.Tags {
		tags = append(tags, cache.UserTagTag(out.UserID, t.ID))
	}
	return tags
}
