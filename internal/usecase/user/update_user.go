package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/validation"
)

type updateUserSrv struct {
	repo  port.UserRepository
	cache port.Cache
}

func NewUserUpdater(repo port.UserRepository, c port.Cache) port.UserUpdater {
	return &updateUserSrv{repo: repo, cache: c}
}

// UpdateUser edits the caller's own profile and drops every cached read of it.
// Invalid input is returned as validator.ValidationErrors.
func (s *updateUserSrv) UpdateUser(ctx context.Context, in port.UpdateUserInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := validation.ValidateStruct(in); err != nil {
		return err
	}
	if in.AuthUserID != in.UserID {
		return ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, in.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load user #%s: %w", in.UserID, err)
	}

	u.Name = in.Name
	u.Bio = in.Bio
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update user #%s: %w", in.UserID, err)
	}

	cache.Invalidate(ctx, s.cache, cache.UserKey(u.ID))
	cache.RevalidateTag(ctx, s.cache, cache.UserTag(u.ID))

	logger.Infof(ctx, "updated profile of user #%s", u.ID)
	return nil
}
