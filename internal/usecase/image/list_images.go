package image

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type imageListerSrv struct {
	repo     port.ImageRepository
	cache    port.Cache
	strg     port.Storage
	pageSize int
}

func NewImageLister(repo port.ImageRepository, c port.Cache, strg port.Storage, pageSize int) port.ImageLister {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &imageListerSrv{repo: repo, cache: c, strg: strg, pageSize: pageSize}
}

// ListUserImages returns one page of a user's images, newest first. Pages start at 1.
func (s *imageListerSrv) ListUserImages(ctx context.Context, userID string, page int) result.Result[port.ImagePage] {
	if page < 1 {
		page = 1
	}
	if page > MaxCachedPage {
		return s.userImagesPage(ctx, userID, page)
	}
	policy := cache.Policy[port.ImagePage]{Tags: []string{cache.UserTag(userID)}}
	return cache.GetCached(ctx, s.cache, cache.UserImagesKey(userID, page), policy, func(ctx context.Context) result.Result[port.ImagePage] {
		return s.userImagesPage(ctx, userID, page)
	})
}

func (s *imageListerSrv) userImagesPage(ctx context.Context, userID string, page int) result.Result[port.ImagePage] {
	// one extra row tells whether a next page exists
	imgs, err := s.repo.ListByUserID(ctx, userID, s.pageSize+1, (page-1)*s.pageSize)
	if err != nil {
		logger.Errorf(ctx, "failed to list images of user #%s: %v", userID, err)
		return result.Fail[port.ImagePage]("could not list images")
	}
	hasNext := len(imgs) > s.pageSize
	if hasNext {
		imgs = imgs[:s.pageSize]
	}
	return result.Ok(port.ImagePage{
		Images:  summarizeAll(imgs, s.strg),
		Page:    page,
		HasNext: hasNext,
	})
}

// ListTagImages returns every image of a user carrying the tag.
func (s *imageListerSrv) ListTagImages(ctx context.Context, userID, tagID string) result.Result[[]port.ImageSummary] {
	policy := cache.Policy[[]port.ImageSummary]{
		Tags: []string{cache.UserTag(userID), cache.UserTagTag(userID, tagID)},
	}
	return cache.GetCached(ctx, s.cache, cache.UserTagImagesKey(userID, tagID), policy, func(ctx context.Context) result.Result[[]port.ImageSummary] {
		imgs, err := s.repo.ListByUserAndTag(ctx, userID, tagID)
		if err != nil {
			logger.Errorf(ctx, "failed to list images of user #%s with tag #%s: %v", userID, tagID, err)
			return result.Fail[[]port.ImageSummary]("could not list images")
		}
		return result.Ok(summarizeAll(imgs, s.strg))
	})
}
