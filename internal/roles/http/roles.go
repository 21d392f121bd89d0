package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	"github.com/aussiebroadwan/rolesvc/internal/roles/service"
	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/idx"
	"github.com/aussiebroadwan/rolesvc/pkg/rolesdk"
	"github.com/aussiebroadwan/rolesvc/pkg/slogx"
)

const maxBodyBytes = 1 << 20

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleCreate handles POST /api/v1/roles
//
//	@Summary		Create a role
//	@Description	Creates a new active role. Requires role:create capability.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rolesdk.CreateRoleRequest	true	"Role details"
//	@Success		201		{object}	rolesdk.RoleInfo			"Created role"
//	@Failure		400		{object}	rolesdk.ErrorResponse		"Invalid payload"
//	@Failure		401		{object}	rolesdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	rolesdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		500		{object}	rolesdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req rolesdk.CreateRoleRequest
	if err := decodeBody(w, r, &req); err != nil {
		log.Debug("invalid create role body", "error", err)
		rolesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, err := h.RolesService.Create(ctx, service.CreateRoleInput{Name: req.Name, Scopes: req.Scopes})
	if err != nil {
		writeServiceError(w, r, err, "create role")
		return
	}

	log.Info("role created", "role_id", role.ID, "name", role.Name, "actor", actor(r))
	httpx.WriteJSON(w, http.StatusCreated, toRoleInfo(role))
}

// HandleList handles GET /api/v1/roles
//
//	@Summary		List roles
//	@Description	Lists active roles. Soft-deleted roles are left out. Requires role:read capability.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	rolesdk.ListRolesResponse	"Active roles"
//	@Failure		401	{object}	rolesdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	rolesdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		500	{object}	rolesdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list roles")
		return
	}

	resp := rolesdk.ListRolesResponse{
		Items: make([]rolesdk.RoleInfo, len(roles)),
		Count: len(roles),
	}
	for i, role := range roles {
		resp.Items[i] = toRoleInfo(role)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/roles/{id}
//
//	@Summary		Get a role
//	@Description	Returns one active role. Requires role:read capability.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string					true	"Role ID"
//	@Success		200	{object}	rolesdk.RoleInfo		"Role"
//	@Failure		401	{object}	rolesdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	rolesdk.ErrorResponse	"Forbidden - missing required capability"
//	@Failure		404	{object}	rolesdk.ErrorResponse	"Role not found or deleted"
//	@Security		BearerAuth
//	@Router			/api/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}
	role, err := h.RolesService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get role")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleInfo(role))
}

// HandleDelete handles DELETE /api/v1/roles/{id}
//
//	@Summary		Delete a role
//	@Description	Soft-deletes a role. Requires role:delete capability.
//	@Tags			Roles
//	@Param			id	path	string	true	"Role ID"
//	@Success		204	"Role deleted"
//	@Failure		401	{object}	rolesdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	rolesdk.ErrorResponse	"Forbidden - missing required capability"
//	@Failure		404	{object}	rolesdk.ErrorResponse	"Role not found"
//	@Security		BearerAuth
//	@Router			/api/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}
	if err := h.RolesService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete role")
		return
	}

	slogx.FromContext(r.Context()).Info("role deleted", "role_id", id, "actor", actor(r))
	w.WriteHeader(http.StatusNoContent)
}

// HandleListUsers handles GET /api/v1/roles/{id}/users
//
//	@Summary		List role assignees
//	@Description	Lists the users assigned to a role. Requires role:read capability.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string						true	"Role ID"
//	@Success		200	{object}	rolesdk.ListUsersResponse	"Assigned users"
//	@Failure		401	{object}	rolesdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	rolesdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		404	{object}	rolesdk.ErrorResponse		"Role not found"
//	@Security		BearerAuth
//	@Router			/api/v1/roles/{id}/users [get].
func (h *RolesHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathRoleID(w, r)
	if !ok {
		return
	}
	users, err := h.RolesService.ListUsers(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "list role users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserList(users))
}

// HandleAssignUsers handles POST /api/v1/roles/{id}/users
//
//	@Summary		Assign users to a role
//	@Description	Assigns each listed user to the role. The response lists only users that were not assigned already.
//	@Description	Either every user is assigned or none is. Requires role:update capability.
//	@Description	The users are wrapped as {items, count} like every other user list, not returned as a bare array.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Role ID"
//	@Param			request	body		[]string					true	"User IDs"
//	@Success		200		{object}	rolesdk.ListUsersResponse	"Newly assigned users"
//	@Failure		400		{object}	rolesdk.ErrorResponse		"Invalid payload"
//	@Failure		401		{object}	rolesdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	rolesdk.ErrorResponse		"Forbidden - missing required capability"
//	@Failure		404		{object}	rolesdk.ErrorResponse		"Role or user not found"
//	@Security		BearerAuth
//	@Router			/api/v1/roles/{id}/users [post].
func (h *RolesHandler) HandleAssignUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roleID, ok := pathRoleID(w, r)
	if !ok {
		return
	}

	var ids rolesdk.AssignUsersRequest
	if err := decodeBody(w, r, &ids); err != nil || ids == nil {
		log.Debug("invalid assign users body", "error", err)
		rolesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	for _, id := range ids {
		if id == "" {
			rolesdk.NewAPIError(http.StatusBadRequest, rolesdk.ErrorCodeInvalidRequest, "user ids must be non-empty").WriteError(w)
			return
		}
	}

	added, err := h.RolesService.AssignUsers(ctx, roleID, ids)
	if err != nil {
		writeServiceError(w, r, err, "assign users")
		return
	}

	log.Info("users assigned", "role_id", roleID, "requested", len(ids), "added", len(added), "actor", actor(r))
	httpx.WriteJSON(w, http.StatusOK, toUserList(added))
}

// HandleRemoveUser handles DELETE /api/v1/roles/{id}/users/{userid}
//
//	@Summary		Remove a user from a role
//	@Description	Unassigns a user. Removing a user that is not assigned succeeds. Requires role:update capability.
//	@Tags			Roles
//	@Param			id		path	string	true	"Role ID"
//	@Param			userid	path	string	true	"User ID"
//	@Success		204		"User removed"
//	@Failure		401		{object}	rolesdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	rolesdk.ErrorResponse	"Forbidden - missing required capability"
//	@Failure		404		{object}	rolesdk.ErrorResponse	"Role or user not found"
//	@Security		BearerAuth
//	@Router			/api/v1/roles/{id}/users/{userid} [delete].
func (h *RolesHandler) HandleRemoveUser(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathRoleID(w, r)
	if !ok {
		return
	}
	userID := r.PathValue("userid")
	if err := h.RolesService.RemoveUser(r.Context(), roleID, userID); err != nil {
		writeServiceError(w, r, err, "remove user")
		return
	}

	slogx.FromContext(r.Context()).Info("user removed", "role_id", roleID, "user_id", userID, "actor", actor(r))
	w.WriteHeader(http.StatusNoContent)
}

// pathRoleID answers 404 for ids that cannot be role ids, before any query.
func pathRoleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		rolesdk.ErrRoleNotFound.WriteError(w)
		return "", false
	}
	return id, true
}

// actor is the token subject behind the request.
func actor(r *http.Request) string {
	if c, ok := httpx.ClaimsFromContext(r.Context()); ok {
		return c.Subject
	}
	return ""
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

// writeServiceError maps service errors onto responses. Anything unexpected
// is logged and answered with a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		rolesdk.NewAPIError(http.StatusBadRequest, rolesdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrRoleNotFound):
		rolesdk.ErrRoleNotFound.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		rolesdk.NewAPIError(http.StatusNotFound, rolesdk.ErrorCodeNotFound, err.Error()).WriteError(w)
	case errors.Is(err, dbpool.ErrConnection), errors.Is(err, dbpool.ErrNotBound):
		slogx.FromContext(r.Context()).Error("database unavailable", "action", action, "error", err)
		rolesdk.ErrUnavailable.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, "error", err)
		rolesdk.ErrServerError.WriteError(w)
	}
}

func toRoleInfo(r domain.Role) rolesdk.RoleInfo {
	scopes := r.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return rolesdk.RoleInfo{
		ID:        r.ID,
		Name:      r.Name,
		Scopes:    scopes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toUserList(users []domain.User) rolesdk.ListUsersResponse {
	resp := rolesdk.ListUsersResponse{
		Items: make([]rolesdk.UserInfo, len(users)),
		Count: len(users),
	}
	for i, u := range users {
		resp.Items[i] = rolesdk.UserInfo{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
	}
	return resp
}
