package memory

import (
	"context"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) GetUserByID(_ context.Context, id string) (domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	r.s.locked(func(st *state) { u, ok = st.users[id] })
	if !ok || u.DeletedAt != nil {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) CreateUser(_ context.Context, u domain.User) error {
	var err error
	r.s.locked(func(st *state) {
		if _, ok := st.users[u.ID]; ok {
			err = store.ErrAlreadyExists
			return
		}
		st.users[u.ID] = u
	})
	return err
}
