// Package rolesdk holds the wire types of the role service and a small
// client for it.
//
// The same types are used by the HTTP handlers when writing responses, so
// the client and server never drift apart.
//
//	c := rolesdk.NewClient("http://localhost:8080", token)
//	role, err := c.CreateRole(ctx, rolesdk.CreateRoleRequest{Name: "editor"})
//	if err != nil {
//		var apiErr *rolesdk.APIError
//		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
//			// token lacks role:create
//		}
//	}
//	added, err := c.AssignUsers(ctx, role.ID, []string{"u1", "u2"})
package rolesdk
