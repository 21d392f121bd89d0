package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/rolesdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe pinging the database and reporting connection pool usage
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	rolesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	rolesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, pool *dbpool.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &rolesdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if pool != nil {
			if s, err := pool.Stats(); err == nil {
				checks.Pool = &rolesdk.PoolStats{
					Acquired: s.Acquired,
					Idle:     s.Idle,
					Total:    s.Total,
					Max:      s.Max,
				}
			}
		}

		httpx.WriteJSON(w, code, rolesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
