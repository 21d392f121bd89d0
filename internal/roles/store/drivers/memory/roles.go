package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
)

type rolesRepo struct{ s *Store }

var _ store.Roles = (*rolesRepo)(nil)

func (r *rolesRepo) CreateRole(_ context.Context, role domain.Role) error {
	var err error
	r.s.locked(func(st *state) {
		if _, ok := st.roles[role.ID]; ok {
			err = store.ErrAlreadyExists
			return
		}
		role.Scopes = slices.Clone(role.Scopes)
		if role.Scopes == nil {
			role.Scopes = []string{}
		}
		st.roles[role.ID] = role
	})
	return err
}

func activeRole(st *state, id string) (domain.Role, bool) {
	role, ok := st.roles[id]
	if !ok || !role.Active() {
		return domain.Role{}, false
	}
	return role, true
}

func (r *rolesRepo) GetRoleByID(_ context.Context, id string) (domain.Role, error) {
	var (
		role domain.Role
		ok   bool
	)
	r.s.locked(func(st *state) { role, ok = activeRole(st, id) })
	if !ok {
		return domain.Role{}, store.ErrNotFound
	}
	role.Scopes = slices.Clone(role.Scopes)
	return role, nil
}

func (r *rolesRepo) ListActive(context.Context) ([]domain.Role, error) {
	out := []domain.Role{}
	r.s.locked(func(st *state) {
		for _, role := range st.roles {
			if role.Active() {
				role.Scopes = slices.Clone(role.Scopes)
				out = append(out, role)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.Role) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *rolesRepo) SoftDeleteRole(_ context.Context, id string, at time.Time) error {
	var err error
	r.s.locked(func(st *state) {
		role, ok := activeRole(st, id)
		if !ok {
			err = store.ErrNotFound
			return
		}
		role.DeletedAt = &at
		role.UpdatedAt = at
		st.roles[id] = role
	})
	return err
}

func (r *rolesRepo) ListRoleUsers(_ context.Context, roleID string) ([]domain.User, error) {
	out := []domain.User{}
	r.s.locked(func(st *state) {
		for _, m := range st.members[roleID] {
			if u, ok := st.users[m.userID]; ok && u.DeletedAt == nil {
				out = append(out, u)
			}
		}
	})
	return out, nil
}

func (r *rolesRepo) AssignUser(_ context.Context, roleID, userID string, at time.Time) (bool, error) {
	var added bool
	r.s.locked(func(st *state) {
		if slices.ContainsFunc(st.members[roleID], func(m membership) bool { return m.userID == userID }) {
			return
		}
		st.members[roleID] = append(st.members[roleID], membership{userID: userID, createdAt: at})
		added = true
	})
	return added, nil
}

func (r *rolesRepo) RemoveUser(_ context.Context, roleID, userID string) (bool, error) {
	var removed bool
	r.s.locked(func(st *state) {
		before := len(st.members[roleID])
		st.members[roleID] = slices.DeleteFunc(st.members[roleID], func(m membership) bool { return m.userID == userID })
		removed = len(st.members[roleID]) != before
	})
	return removed, nil
}
