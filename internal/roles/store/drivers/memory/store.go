// Package memory is an in-process store driver for tests and DB_DRIVER=memory
// development runs.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
)

type membership struct {
	userID    string
	createdAt time.Time
}

type state struct {
	roles   map[string]domain.Role
	users   map[string]domain.User
	members map[string][]membership // role id -> assignees in insertion order
}

func newState() *state {
	return &state{
		roles:   make(map[string]domain.Role),
		users:   make(map[string]domain.User),
		members: make(map[string][]membership),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.roles {
		v.Scopes = slices.Clone(v.Scopes)
		c.roles[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.members {
		c.members[k] = slices.Clone(v)
	}
	return c
}

// Store keeps everything in maps behind a single mutex. Transactions run
// against a copy that replaces the live state on commit, other callers wait
// until the transaction is done.
type Store struct {
	mu *sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, st: newState()}
}

func (s *Store) Roles() store.Roles { return &rolesRepo{s: s} }
func (s *Store) Users() store.Users { return &usersRepo{s: s} }

// ApplyMigrations is a no-op, there is no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: &sync.Mutex{}, st: s.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

func (s *Store) locked(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}
