package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rolesvc/pkg/slogx"
)

// RequireAllScopes the caller must have every scope listed.
func RequireAllScopes(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				denied(w, r, required)
				return
			}
			for _, scope := range required {
				if !claims.HasScope(scope) {
					denied(w, r, required)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denied(w http.ResponseWriter, r *http.Request, required []string) {
	slogx.FromContext(r.Context()).Info("capability check failed",
		"required", required,
		"user_id", UserIDKeyExtractor(r),
	)
	writeBearerScopeError(w, required...)
}

// RFC 6750-compliant error response for bearer insufficient_scope.
func writeBearerScopeError(w http.ResponseWriter, required ...string) {
	scope := strings.Join(required, " ")
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+scope+`"`)
	WriteJSON(w, http.StatusForbidden, errorBody{
		Error:            "insufficient_scope",
		ErrorDescription: "missing required capability: " + scope,
	})
}
