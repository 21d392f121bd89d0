package rolesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeServerError       = "server_error"
	ErrorCodeUnavailable       = "temporarily_unavailable"
)

// APIError is an error response, written by handlers and returned by the
// client.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// NewAPIError builds an APIError.
func NewAPIError(status int, code, description string) *APIError {
	return &APIError{StatusCode: status, Code: code, Description: description}
}

var (
	ErrInvalidRequest = NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "the request is malformed or missing required parameters")
	ErrRoleNotFound   = NewAPIError(http.StatusNotFound, ErrorCodeNotFound, "role not found")
	ErrUserNotFound   = NewAPIError(http.StatusNotFound, ErrorCodeNotFound, "user not found")
	ErrServerError    = NewAPIError(http.StatusInternalServerError, ErrorCodeServerError, "internal server error")
	ErrUnavailable    = NewAPIError(http.StatusServiceUnavailable, ErrorCodeUnavailable, "database is not available")
)

// parseErrorResponse turns a non 2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return NewAPIError(resp.StatusCode, errResp.Error, errResp.ErrorDescription)
	}

	return NewAPIError(resp.StatusCode, ErrorCodeServerError,
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}
