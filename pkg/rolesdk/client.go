package rolesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the role service with a fixed bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient returns a client with a 10s timeout.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON reads resp into target when the status matches, otherwise it
// returns the parsed *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, b)
	}
	if err := json.Unmarshal(b, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, b)
	}
	return nil
}

func rolePath(id string, rest ...string) string {
	p := "/api/v1/roles/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// CreateRole requires role:create.
func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleInfo, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/roles", req)
	if err != nil {
		return nil, err
	}
	var out RoleInfo
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRoles requires role:read.
func (c *Client) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/roles", nil)
	if err != nil {
		return nil, err
	}
	var out ListRolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRole requires role:read.
func (c *Client) GetRole(ctx context.Context, id string) (*RoleInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, rolePath(id), nil)
	if err != nil {
		return nil, err
	}
	var out RoleInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole requires role:delete.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, rolePath(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ListRoleUsers requires role:read.
func (c *Client) ListRoleUsers(ctx context.Context, id string) (*ListUsersResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, rolePath(id, "users"), nil)
	if err != nil {
		return nil, err
	}
	var out ListUsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignUsers requires role:update and returns only the users that were
// not assigned before.
func (c *Client) AssignUsers(ctx context.Context, id string, userIDs []string) (*ListUsersResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, rolePath(id, "users"), AssignUsersRequest(userIDs))
	if err != nil {
		return nil, err
	}
	var out ListUsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveUser requires role:update.
func (c *Client) RemoveUser(ctx context.Context, id, userID string) error {
	resp, err := c.do(ctx, http.MethodDelete, rolePath(id, "users", userID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Ready calls /readyz.
func (c *Client) Ready(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
