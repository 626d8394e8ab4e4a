package image

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type tagListerSrv struct {
	repo  port.TagRepository
	cache port.Cache
}

func NewTagLister(repo port.TagRepository, c port.Cache) port.TagLister {
	return &tagListerSrv{repo: repo, cache: c}
}

// ListTags returns a user's tags with their image counts. Each order has its own key.
func (s *tagListerSrv) ListTags(ctx context.Context, userID string, order model.TagOrder) result.Result[[]port.TagOutput] {
	key := cache.UserTagsByUsageKey(userID)
	if order == model.TagOrderName {
		key = cache.UserTagsByNameKey(userID)
	} else {
		order = model.TagOrderUsage
	}

	policy := cache.Policy[[]port.TagOutput]{Tags: []string{cache.UserTag(userID)}}
	return cache.GetCached(ctx, s.cache, key, policy, func(ctx context.Context) result.Result[[]port.TagOutput] {
		tags, err := s.repo.ListByUserID(ctx, userID, order)
		if err != nil {
			logger.Errorf(ctx, "failed to list tags of user #%s: %v", userID, err)
			return result.Fail[[]port.TagOutput]("could not list tags")
		}
		out := make([]port.TagOutput, 0, len(tags))
		for _, t := range tags {
			out = append(out, port.TagOutput{ID: t.ID, Name: t.Name, ImageCount: t.ImageCount})
		}
		return result.Ok(out)
	})
}
