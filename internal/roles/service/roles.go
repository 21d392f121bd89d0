package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/aussiebroadwan/rolesvc/pkg/idx"
	"github.com/go-playground/validator/v10"
)

// CreateRoleInput is validated before anything touches the store.
type CreateRoleInput struct {
	Name   string   `validate:"required,max=128"`
	Scopes []string `validate:"omitempty,dive,required,max=256"`
}

type RolesService struct {
	Store store.Store

	// Now defaults to time.Now in UTC.
	Now func() time.Time

	validate *validator.Validate
}

func NewRolesService(s store.Store) *RolesService {
	return &RolesService{
		Store:    s,
		Now:      func() time.Time { return time.Now().UTC() },
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create stores a new active role with a fresh ULID.
func (s *RolesService) Create(ctx context.Context, in CreateRoleInput) (domain.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return domain.Role{}, fmt.Errorf("%w: %s", ErrInvalidRole, describeValidation(err))
	}

	now := s.Now()
	role := domain.Role{
		ID:        string(idx.NewAt(now)),
		Name:      in.Name,
		Scopes:    dedupe(in.Scopes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		return domain.Role{}, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// List returns every active role.
func (s *RolesService) List(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListActive(ctx)
}

// Get fetches an active role. Soft-deleted roles are reported as missing.
func (s *RolesService) Get(ctx context.Context, id string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return role, err
}

// Delete soft-deletes a role, the row and its assignments stay.
func (s *RolesService) Delete(ctx context.Context, id string) error {
	err := s.Store.Roles().SoftDeleteRole(ctx, id, s.Now())
	if errors.Is(err, store.ErrNotFound) {
		return ErrRoleNotFound
	}
	return err
}

// ListUsers returns the users assigned to an active role.
func (s *RolesService) ListUsers(ctx context.Context, roleID string) ([]domain.User, error) {
	if _, err := s.Get(ctx, roleID); err != nil {
		return nil, err
	}
	return s.Store.Roles().ListRoleUsers(ctx, roleID)
}

// AssignUsers links each user to the role in order and returns only the
// users that were not linked before. Everything runs in one transaction, so
// the first unknown user aborts the call and nothing is assigned.
func (s *RolesService) AssignUsers(ctx context.Context, roleID string, userIDs []string) ([]domain.User, error) {
	added := []domain.User{}

	err := s.Store.WithTx(ctx, func(tx store.Store) error {
		added = added[:0]

		if _, err := tx.Roles().GetRoleByID(ctx, roleID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRoleNotFound
			}
			return err
		}

		now := s.Now()
		for _, userID := range userIDs {
			u, err := tx.Users().GetUserByID(ctx, userID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
			}
			if err != nil {
				return err
			}

			isNew, err := tx.Roles().AssignUser(ctx, roleID, userID, now)
			if err != nil {
				return fmt.Errorf("assign %s: %w", userID, err)
			}
			if isNew {
				added = append(added, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveUser unlinks a user from a role. Removing a user that isn't
// assigned is not an error.
func (s *RolesService) RemoveUser(ctx context.Context, roleID, userID string) error {
	if _, err := s.Get(ctx, roleID); err != nil {
		return err
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return err
	}
	_, err := s.Store.Roles().RemoveUser(ctx, roleID, userID)
	return err
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
