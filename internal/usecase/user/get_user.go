package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type userGetterSrv struct {
	repo         port.UserRepository
	cache        port.Cache
	strg         port.Storage
	avatarBucket string
	ttl          time.Duration
}

func NewUserGetter(repo port.UserRepository, c port.Cache, strg port.Storage, avatarBucket string, ttl time.Duration) port.UserGetter {
	return &userGetterSrv{repo: repo, cache: c, strg: strg, avatarBucket: avatarBucket, ttl: ttl}
}

// GetPublicUser returns the profile shown on a user's page.
func (s *userGetterSrv) GetPublicUser(ctx context.Context, id string) result.Result[*port.PublicUserOutput] {
	policy := cache.Policy[*port.PublicUserOutput]{
		TTL:  s.ttl,
		Tags: []string{cache.UserTag(id)},
	}
	return cache.GetCached(ctx, s.cache, cache.UserKey(id), policy, func(ctx context.Context) result.Result[*port.PublicUserOutput] {
		u, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFound[*port.PublicUserOutput]("user not found")
		}
		if err != nil {
			logger.Errorf(ctx, "failed to load user #%s: %v", id, err)
			return result.Fail[*port.PublicUserOutput]("could not load user")
		}

		out := &port.PublicUserOutput{
			ID:        u.ID,
			Name:      u.Name,
			Bio:       u.Bio,
			CreatedAt: u.CreatedAt,
		}
		if u.AvatarKey != nil && *u.AvatarKey != "" {
			out.AvatarURL = s.strg.PublicURL(s.avatarBucket, *u.AvatarKey)
		}
		return result.Ok(out)
	})
}
