package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

type ImageRepository struct {
	db *sql.DB
}

// compile-time check: *ImageRepository must satisfy port.ImageRepository
var _ port.ImageRepository = (*ImageRepository)(nil)

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

const imageColumns = `i.id, i.user_id, i.title, i.bucket, i.object_key, i.width, i.height, i.thumbhash, i.variants, i.created_at, i.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (model.Image, error) {
	var img model.Image
	err := row.Scan(
		&img.ID, &img.UserID, &img.Title,
		&img.Bucket, &img.ObjectKey,
		&img.Width, &img.Height,
		&img.Thumbhash, &img.Variants,
		&img.CreatedAt, &img.UpdatedAt,
	)
	return img, err
}

// GetByID loads an image together with its tags.
func (r *ImageRepository) GetByID(ctx context.Context, id string) (*model.Image, error) {
	log.Printf("fetching image #%s from the database...", id)

	const query = `
      SELECT ` + imageColumns + `
      FROM images i
      WHERE i.id = ?
    `
	img, err := scanImage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	img.Tags = tags

	return &img, nil
}

func (r *ImageRepository) tagsOf(ctx context.Context, imageID string) ([]model.Tag, error) {
	const query = `
      SELECT t.id, t.user_id, t.name
      FROM tags t
      JOIN image_tags it ON it.tag_id = t.id
      WHERE it.image_id = ?
      ORDER BY t.name
    `
	rows, err := r.db.QueryContext(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Delete removes an image row; tag links go with it. A missing image yields sql.ErrNoRows.
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	log.Printf("deleting database record for image #%s...", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *ImageRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	log.Printf("counting images of user #%s...", userID)

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// ListByUserID returns a user's images, newest first.
func (r *ImageRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.Image, error) {
	log.Printf("listing images of user #%s (limit %d, offset %d)...", userID, limit, offset)

	const query = `
      SELECT ` + imageColumns + `
      FROM images i
      WHERE i.user_id = ?
      ORDER BY i.created_at DESC, i.id
      LIMIT ? OFFSET ?
    `
	return r.list(ctx, query, userID, limit, offset)
}

// ListByUserAndTag returns a user's images carrying the tag, newest first.
func (r *ImageRepository) ListByUserAndTag(ctx context.Context, userID, tagID string) ([]model.Image, error) {
	log.Printf("listing images of user #%s with tag #%s...", userID, tagID)

	const query = `
      SELECT ` + imageColumns + `
      FROM images i
      JOIN image_tags it ON it.image_id = i.id
      WHERE i.user_id = ? AND it.tag_id = ?
      ORDER BY i.created_at DESC, i.id
    `
	return r.list(ctx, query, userID, tagID)
}

func (r *ImageRepository) list(ctx context.Context, query string, args ...any) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}
