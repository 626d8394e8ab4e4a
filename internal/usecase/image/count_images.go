package image

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type imageCounterSrv struct {
	repo  port.ImageRepository
	cache port.Cache
}

func NewImageCounter(repo port.ImageRepository, c port.Cache) port.ImageCounter {
	return &imageCounterSrv{repo: repo, cache: c}
}

func (s *imageCounterSrv) CountImages(ctx context.Context, userID string) result.Result[int] {
	policy := cache.Policy[int]{Tags: []string{cache.UserTag(userID)}}
	return cache.GetCached(ctx, s.cache, cache.UserImageCountKey(userID), policy, func(ctx context.Context) result.Result[int] {
		n, err := s.repo.CountByUserID(ctx, userID)
		if err != nil {
			logger.Errorf(ctx, "failed to count images of user #%s: %v", userID, err)
			return result.Fail[int]("could not count images")
		}
		return result.Ok(n)
	})
}
