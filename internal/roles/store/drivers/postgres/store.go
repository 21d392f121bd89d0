package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Store runs statements on the connection bound to the request when there is
// one, otherwise straight on the pool.
type Store struct {
	db *dbpool.Manager
	tx pgx.Tx // set on stores handed to WithTx callbacks
}

func NewStore(db *dbpool.Manager) *Store {
	return &Store{db: db}
}

func (s *Store) querier(ctx context.Context) (dbpool.Querier, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	return s.db.Querier(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
// Inside a transaction pgx turns Begin into a savepoint.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	q, err := s.querier(ctx)
	if err != nil {
		return err
	}

	tx, err := q.Begin(ctx)
	if err != nil {
		return err
	}

	// No-op after a successful commit.
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&Store{db: s.db, tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Roles() store.Roles { return &rolesRepo{s: s} }
func (s *Store) Users() store.Users { return &usersRepo{s: s} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func scanRole(row pgx.Row) (domain.Role, error) {
	var r domain.Role
	var deletedAt *time.Time
	if err := row.Scan(&r.ID, &r.Name, &r.Scopes, &r.CreatedAt, &r.UpdatedAt, &deletedAt); err != nil {
		return domain.Role{}, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	r.DeletedAt = mapNullTimePtr(deletedAt)
	if r.Scopes == nil {
		r.Scopes = []string{}
	}
	return r, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var deletedAt *time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	u.DeletedAt = mapNullTimePtr(deletedAt)
	return u, nil
}
