package rolesdk

import "time"

// ErrorResponse is the body of every non 2xx response.
type ErrorResponse struct {
	// Error is a machine readable code (e.g. "not_found", "insufficient_scope")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// CreateRoleRequest is the body of POST /api/v1/roles.
type CreateRoleRequest struct {
	Name   string   `json:"name" validate:"required,max=128"`
	Scopes []string `json:"scopes,omitempty" validate:"omitempty,dive,required,max=256"`
}

// RoleInfo is the public projection of a role.
type RoleInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListRolesResponse lists active roles.
type ListRolesResponse struct {
	Items []RoleInfo `json:"items"`
	Count int        `json:"count"`
}

// UserInfo is the public projection of a user.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// ListUsersResponse lists users, either the assignees of a role or the
// users newly added by an assignment.
type ListUsersResponse struct {
	Items []UserInfo `json:"items"`
	Count int        `json:"count"`
}

// AssignUsersRequest is the body of POST /api/v1/roles/{id}/users.
type AssignUsersRequest []string

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency state on /readyz.
type HealthChecks struct {
	Database string     `json:"database"`
	Pool     *PoolStats `json:"pool,omitempty"`
}

// PoolStats mirrors the connection pool counters.
type PoolStats struct {
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
	Total    int32 `json:"total"`
	Max      int32 `json:"max"`
}
