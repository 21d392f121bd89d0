package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveFrom(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("ignores forwarding headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})
}

func TestClientIPExtractor(t *testing.T) {
	trusted, err := httpx.ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.1"})
	require.NoError(t, err)
	extract := httpx.ClientIPExtractor(trusted)

	newReq := func(remote string, headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	t.Run("untrusted peer cannot spoof", func(t *testing.T) {
		req := newReq("198.51.100.7:4000", map[string]string{"X-Forwarded-For": "203.0.113.1"})
		require.Equal(t, "198.51.100.7", extract(req))
	})

	t.Run("trusted peer forwards the client", func(t *testing.T) {
		req := newReq("10.1.2.3:4000", map[string]string{"X-Forwarded-For": "203.0.113.1"})
		require.Equal(t, "203.0.113.1", extract(req))
	})

	t.Run("skips trusted hops from the right", func(t *testing.T) {
		req := newReq("10.1.2.3:4000", map[string]string{"X-Forwarded-For": "6.6.6.6, 203.0.113.1, 10.9.9.9"})
		require.Equal(t, "203.0.113.1", extract(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := newReq("192.168.1.1:4000", map[string]string{"X-Real-IP": "203.0.113.2"})
		require.Equal(t, "203.0.113.2", extract(req))
	})

	t.Run("no headers uses the peer", func(t *testing.T) {
		require.Equal(t, "10.1.2.3", extract(newReq("10.1.2.3:4000", nil)))
	})
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := httpx.ParseTrustedProxies([]string{" 10.0.0.0/8", "", "::1"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = httpx.ParseTrustedProxies([]string{"not-an-ip"})
	require.Error(t, err)
}

func TestCompositeKeyExtractorUsesSubject(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	extractor := httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)
	require.Equal(t, "192.168.1.1", extractor(req))

	ctx := httpx.ContextWithClaims(req.Context(), jwtx.NewAccessClaims("admin", "rolesvc", nil, time.Minute, time.Now()))
	require.Equal(t, "admin:192.168.1.1", extractor(req.WithContext(ctx)))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}, httpx.IPKeyExtractor)(okHandler())

		for i := range 3 {
			require.Equal(t, http.StatusOK, serveFrom(h, "192.168.1.1:12345").Code, "request %d should succeed", i+1)
		}
		rec := serveFrom(h, "192.168.1.1:12345")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, serveFrom(h, "192.168.1.1:1").Code)
		require.Equal(t, http.StatusTooManyRequests, serveFrom(h, "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, serveFrom(h, "192.168.1.2:1").Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		empty := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, empty)(okHandler())

		for range 3 {
			require.Equal(t, http.StatusOK, serveFrom(h, "192.168.1.1:1").Code)
		}
	})
}

func TestRateLimitProfiles(t *testing.T) {
	require.Less(t, httpx.DefaultModerateLimit().RequestsPerWindow, httpx.DefaultLenientLimit().RequestsPerWindow)
	require.Positive(t, httpx.DefaultModerateLimit().Burst)
	require.Positive(t, httpx.DefaultLenientLimit().Burst)
}
