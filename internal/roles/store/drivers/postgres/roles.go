package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/jackc/pgx/v5"
)

const roleColumns = `id, name, scopes, created_at, updated_at, deleted_at`

type rolesRepo struct{ s *Store }

var _ store.Roles = (*rolesRepo)(nil)

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	q, err := r.s.querier(ctx)
	if err != nil {
		return err
	}
	scopes := role.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	_, err = q.Exec(ctx,
		`INSERT INTO roles (id, name, scopes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		role.ID, role.Name, scopes, role.CreatedAt, role.UpdatedAt,
	)
	return mapUnique(err)
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return domain.Role{}, err
	}
	role, err := scanRole(q.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = $1 AND deleted_at IS NULL`, id))
	return role, mapNotFound(err)
}

func (r *rolesRepo) ListActive(ctx context.Context) ([]domain.Role, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Role, error) {
		return scanRole(row)
	})
}

func (r *rolesRepo) SoftDeleteRole(ctx context.Context, id string, at time.Time) error {
	q, err := r.s.querier(ctx)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx,
		`UPDATE roles SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) ListRoleUsers(ctx context.Context, roleID string) ([]domain.User, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `
		SELECT u.id, u.email, u.display_name, u.created_at, u.updated_at, u.deleted_at
		FROM role_users ru
		JOIN users u ON u.id = ru.user_id
		WHERE ru.role_id = $1 AND u.deleted_at IS NULL
		ORDER BY ru.created_at, u.id`, roleID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
}

func (r *rolesRepo) AssignUser(ctx context.Context, roleID, userID string, at time.Time) (bool, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return false, err
	}
	tag, err := q.Exec(ctx,
		`INSERT INTO role_users (role_id, user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		roleID, userID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *rolesRepo) RemoveUser(ctx context.Context, roleID, userID string) (bool, error) {
	q, err := r.s.querier(ctx)
	if err != nil {
		return false, err
	}
	tag, err := q.Exec(ctx,
		`DELETE FROM role_users WHERE role_id = $1 AND user_id = $2`, roleID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
