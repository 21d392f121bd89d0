package roles_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/app"
	"github.com/aussiebroadwan/rolesvc/pkg/jwtx"
	"github.com/aussiebroadwan/rolesvc/pkg/rolesdk"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Full stack tests: a postgres container, the application built from
 * config the way cmd/rolesvc does it, and the rolesdk client.
 */

const (
	jwtSecret   = "e2e-secret-0123456789"
	jwtIssuer   = "rolesvc-e2e"
	scopePrefix = "acme."
)

var adminScopes = []string{
	scopePrefix + "role:create",
	scopePrefix + "role:read",
	scopePrefix + "role:update",
	scopePrefix + "role:delete",
}

type stack struct {
	URL string
	DSN string
	App *app.Application
}

// startPostgres runs a throwaway postgres and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e tests need docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("roles"),
		tcpostgres.WithUsername("roles"),
		tcpostgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return dsn
}

func baseConfig(dsn string) app.Config {
	return app.Config{
		DBDriver:            app.DriverPostgres,
		DatabaseURL:         dsn,
		DBSSLMode:           "disable",
		DBPoolMinSize:       1,
		DBPoolMaxSize:       4,
		DBRetryLimit:        10,
		DBRetryWait:         200 * time.Millisecond,
		DBConnPerReq:        true,
		JWTSecret:           jwtSecret,
		JWTIssuer:           jwtIssuer,
		ACLScopePrefix:      scopePrefix,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 5 * time.Second,
	}
}

// setupStack starts postgres, builds the application against it and serves
// its handler. Users are seeded straight into the users table.
func setupStack(t *testing.T, users ...string) *stack {
	t.Helper()
	dsn := startPostgres(t)

	a, err := app.New(context.Background(), baseConfig(dsn))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := a.Shutdown(); err != nil {
			t.Logf("shutdown: %v", err)
		}
	})

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	seedUsers(t, dsn, users...)
	return &stack{URL: srv.URL, DSN: dsn, App: a}
}

func seedUsers(t *testing.T, dsn string, ids ...string) {
	t.Helper()
	if len(ids) == 0 {
		return
	}
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)

	for _, id := range ids {
		_, err := conn.Exec(ctx, `INSERT INTO users (id, email) VALUES ($1, $2)`, id, id+"@example.com")
		require.NoError(t, err)
	}
}

func (s *stack) client(t *testing.T, sub string, scopes ...string) *rolesdk.Client {
	t.Helper()
	signer, err := jwtx.NewSignerHS256([]byte(jwtSecret))
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewAccessClaims(sub, jwtIssuer, scopes, 10*time.Minute, time.Now()))
	require.NoError(t, err)
	return rolesdk.NewClient(s.URL, tok)
}

// assertStatus checks err is an APIError carrying status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var apiErr *rolesdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
}

func userIDs(resp *rolesdk.ListUsersResponse) []string {
	out := make([]string, 0, len(resp.Items))
	for _, u := range resp.Items {
		out = append(out, u.ID)
	}
	return out
}
