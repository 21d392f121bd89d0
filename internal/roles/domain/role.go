package domain

import "time"

type Role struct {
	ID        string
	Name      string
	Scopes    []string // Capabilities granted to holders of the role
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete marker, nil while active
}

// Active reports whether the role has not been soft-deleted.
func (r Role) Active() bool { return r.DeletedAt == nil }
