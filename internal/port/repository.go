package port

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// ImageRepository defines persistence operations for images.
type ImageRepository interface {
	GetByID(ctx context.Context, id string) (*model.Image, error)
	Delete(ctx context.Context, id string) error
	CountByUserID(ctx context.Context, userID string) (int, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.Image, error)
	ListByUserAndTag(ctx context.Context, userID, tagID string) ([]model.Image, error)
}

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	ListByUserID(ctx context.Context, userID string, order model.TagOrder) ([]model.Tag, error)
}
