package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the postgres and
// memory drivers. Sub-repositories keep concerns tidy, and the only way to
// get a transactional Store is through WithTx so transactions don't nest by
// accident.
type Store interface {
	Roles() Roles
	Users() Users

	ApplyMigrations() error

	// WithTx runs fn in a transaction. fn's Store is bound to it: returning an
	// error rolls back, returning nil commits.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Roles interface {
	// CreateRole inserts a role, the id is a ULID provided by the caller.
	CreateRole(ctx context.Context, r domain.Role) error

	// GetRoleByID returns an active role. Soft-deleted roles are ErrNotFound.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// ListActive returns roles without a deleted_at, oldest first.
	ListActive(ctx context.Context) ([]domain.Role, error)

	// SoftDeleteRole stamps deleted_at. Missing or already deleted roles are
	// ErrNotFound.
	SoftDeleteRole(ctx context.Context, id string, at time.Time) error

	// ListRoleUsers returns the active users assigned to a role.
	ListRoleUsers(ctx context.Context, roleID string) ([]domain.User, error)

	// AssignUser links a user to a role and reports whether the link is new.
	AssignUser(ctx context.Context, roleID, userID string, at time.Time) (bool, error)

	// RemoveUser unlinks a user and reports whether a link existed.
	RemoveUser(ctx context.Context, roleID, userID string) (bool, error)
}

type Users interface {
	// GetUserByID returns an active user.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser mirrors a user from the identity service.
	CreateUser(ctx context.Context, u domain.User) error
}
