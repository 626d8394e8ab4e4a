package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

type TagRepository struct {
	db *sql.DB
}

// compile-time check: *TagRepository must satisfy port.TagRepository
var _ port.TagRepository = (*TagRepository)(nil)

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

var tagOrderBy = map[model.TagOrder]string{
	model.TagOrderUsage: "image_count DESC, t.name ASC",
	model.TagOrderName:  "t.name ASC",
}

// ListByUserID returns every tag of a user with the number of images using it.
func (r *TagRepository) ListByUserID(ctx context.Context, userID string, order model.TagOrder) ([]model.Tag, error) {
	orderBy, ok := tagOrderBy[order]
	if !ok {
		return nil, fmt.Errorf("unknown tag order %q", order)
	}
	log.Printf("listing tags of user #%s ordered by %s...", userID, order)

	query := `
      SELECT t.id, t.user_id, t.name, COUNT(it.image_id) AS image_count
      FROM tags t
      LEFT JOIN image_tags it ON it.tag_id = t.id
      WHERE t.user_id = ?
      GROUP BY t.id, t.user_id, t.name
      ORDER BY ` + orderBy
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.ImageCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
