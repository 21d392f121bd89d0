package rolesdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Run("structured body", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusForbidden}
		err := parseErrorResponse(resp, []byte(`{"error":"insufficient_scope","error_description":"missing role:read"}`))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, ErrorCodeInsufficientScope, apiErr.Code)
	})

	t.Run("unstructured body", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadGateway}
		err := parseErrorResponse(resp, []byte("upstream down"))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeServerError, apiErr.Code)
		require.Contains(t, apiErr.Description, "502")
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
	})
}

func TestAPIErrorWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrRoleNotFound.WriteError(rec)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"not_found","error_description":"role not found"}`, rec.Body.String())
}
