package postgres

import (
	"context"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return domain.User{}, err
	}
	u, err := scanUser(q.QueryRow(ctx, `
		SELECT id, email, display_name, created_at, updated_at, deleted_at
		FROM users WHERE id = $1 AND deleted_at IS NULL`, id))
	return u, mapNotFound(err)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	q, err := r.s.querier(ctx)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `
		INSERT INTO users (id, email, display_name, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.DisplayName, u.CreatedAt, u.UpdatedAt, u.DeletedAt)
	return mapUnique(err)
}
