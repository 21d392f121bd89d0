package dbpool

import (
	"net/http"

	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/slogx"
)

// RequestMiddleware binds one lazily acquired connection to each request
// and releases it when the handler returns, panics included. With
// UseForRequest off it does nothing.
func (m *Manager) RequestMiddleware(next http.Handler) http.Handler {
	if !m.cfg.UseForRequest {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := m.Pool()
		if err != nil {
			slogx.FromContext(r.Context()).Error("no database pool for request", "err", err)
			httpx.WriteError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "database is not available")
			return
		}

		lc := NewLazyConn(p)
		defer lc.Release()

		next.ServeHTTP(w, r.WithContext(WithConn(r.Context(), lc)))
	})
}
