package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

type UserRepository struct {
	db *sql.DB
}

// compile-time check: *UserRepository must satisfy port.UserRepository
var _ port.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	log.Printf("fetching user #%s from the database...", id)

	const query = `
      SELECT id, name, bio, avatar_key, created_at, updated_at
      FROM users
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Bio, &u.AvatarKey, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

// Update writes the editable profile fields. A missing user yields sql.ErrNoRows.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	log.Printf("updating database record for user #%s...", user.ID)

	const query = `
      UPDATE users
      SET
        name = ?,
        bio  = ?
      WHERE id = ?
    `
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Bio, user.ID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
