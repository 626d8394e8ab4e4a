package port

import (
	"context"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

// UserGetter returns the public profile of a user.
type UserGetter interface {
	GetPublicUser(ctx context.Context, id string) result.Result[*PublicUserOutput]
}
type PublicUserOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdater updates the profile of the authenticated user.
type UserUpdater interface {
	UpdateUser(ctx context.Context, in UpdateUserInput) error
}
type UpdateUserInput struct {
	AuthUserID string `json:"-" validate:"required"`
	UserID     string `json:"-" validate:"required"`
	Name       string `json:"name" validate:"required,notblank,max=30"`
	Bio        string `json:"bio" validate:"max=100"`
}

// TagLister lists the tags of a user.
type TagLister interface {
	ListTags(ctx context.Context, userID string, order model.TagOrder) result.Result[[]TagOutput]
}
type TagOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
}

// ImageCounter counts the images of a user.
type ImageCounter interface {
	CountImages(ctx context.Context, userID string) result.Result[int]
}

// ImageLister lists images of a user, either paginated or by tag.
type ImageLister interface {
	ListUserImages(ctx context.Context, userID string, page int) result.Result[ImagePage]
	ListTagImages(ctx context.Context, userID, tagID string) result.Result[[]ImageSummary]
}
type ImageSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Placeholder string  `json:"placeholder"`
	Luminance   float64 `json:"luminance"`
}
type ImagePage struct {
	Images  []ImageSummary `json:"images"`
	Page    int            `json:"page"`
	HasNext bool           `json:"has_next"`
}

// ImageGetter returns the details of an image, placeholder included.
type ImageGetter interface {
	GetImage(ctx context.Context, id string) result.Result[*ImageOutput]
}
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
type ImageOutput struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Thumbhash    string    `json:"thumbhash"`
	Placeholder  string    `json:"placeholder"`
	Luminance    float64   `json:"luminance"`
	AverageColor string    `json:"average_color,omitempty"`
	Tags         []TagRef  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

// DownloadLinkGenerator returns a short-lived link to the original file.
type DownloadLinkGenerator interface {
	GenerateDownloadLink(ctx context.Context, id string) (string, error)
}

// ImageDeleter deletes an image owned by the authenticated user.
type ImageDeleter interface {
	DeleteImage(ctx context.Context, in DeleteImageInput) error
}
type DeleteImageInput struct {
	AuthUserID string
	ImageID    string
}

// FilePurger removes the stored files of a deleted image.
type FilePurger interface {
	PurgeFiles(ctx context.Context, in PurgeFilesInput) error
}
type PurgeFilesInput struct {
	Bucket     string
	ObjectKeys []string
}
