package dbpool_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/aussiebroadwan/rolesvc/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func boundManager(t *testing.T, useForRequest bool) (*dbpool.Manager, *fakePool) {
	t.Helper()
	p := newFakePool()
	cfg := dbpool.DefaultConfig()
	cfg.UseForRequest = useForRequest
	m := dbpool.NewManager(cfg,
		dbpool.WithLogger(slogx.Discard()),
		dbpool.WithOpener((&opener{pool: p}).open),
	)
	require.NoError(t, m.Bind(context.Background()))
	return m, p
}

func useConn(m *dbpool.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q1, err := m.Querier(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		q2, _ := m.Querier(r.Context())
		if q1 != q2 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequestMiddlewareReleases(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		m, p := boundManager(t, true)
		rec := httptest.NewRecorder()
		m.RequestMiddleware(useConn(m)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.EqualValues(t, 1, p.acquires.Load())
		require.EqualValues(t, 1, p.releases.Load())
	})

	t.Run("on handler error response", func(t *testing.T) {
		m, p := boundManager(t, true)
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = m.Querier(r.Context())
			w.WriteHeader(http.StatusInternalServerError)
		})
		m.RequestMiddleware(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.EqualValues(t, 1, p.acquires.Load())
		require.EqualValues(t, 1, p.releases.Load())
	})

	t.Run("on panic", func(t *testing.T) {
		m, p := boundManager(t, true)
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = m.Querier(r.Context())
			panic("boom")
		})

		require.Panics(t, func() {
			m.RequestMiddleware(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
		require.EqualValues(t, 1, p.acquires.Load())
		require.EqualValues(t, 1, p.releases.Load())
	})
}

func TestRequestMiddlewareIsLazy(t *testing.T) {
	m, p := boundManager(t, true)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lc, ok := dbpool.ConnFromContext(r.Context())
		require.True(t, ok)
		require.False(t, lc.Acquired())
		w.WriteHeader(http.StatusNoContent)
	})
	m.RequestMiddleware(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Zero(t, p.acquires.Load())
	require.Zero(t, p.releases.Load())
}

func TestRequestMiddlewareDisabled(t *testing.T) {
	m, p := boundManager(t, false)
	var bound bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, bound = dbpool.ConnFromContext(r.Context())
		_, _ = m.Querier(r.Context())
	})
	m.RequestMiddleware(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.False(t, bound)
	require.Zero(t, p.acquires.Load())
}

func TestRequestMiddlewareUnbound(t *testing.T) {
	m := dbpool.NewManager(dbpool.DefaultConfig(), dbpool.WithLogger(slogx.Discard()))
	called := false
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rec := httptest.NewRecorder()
	m.RequestMiddleware(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.False(t, called)
}

func TestLazyConnReleaseTwice(t *testing.T) {
	p := newFakePool()
	lc := dbpool.NewLazyConn(p)

	_, err := lc.Get(context.Background())
	require.NoError(t, err)
	require.True(t, lc.Acquired())

	lc.Release()
	lc.Release()
	require.EqualValues(t, 1, p.releases.Load())

	_, err = lc.Get(context.Background())
	require.ErrorIs(t, err, dbpool.ErrReleased)
}
