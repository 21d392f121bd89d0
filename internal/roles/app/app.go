package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/domain"
	httpapi "github.com/aussiebroadwan/rolesvc/internal/roles/http"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store/drivers/memory"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store/drivers/postgres"
	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/jwtx"
	"github.com/aussiebroadwan/rolesvc/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires config, the pool manager, the store and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	pool     *dbpool.Manager // nil with the memory driver
	db       store.Store
	verifier jwtx.Verifier

	server *http.Server
	router *httpapi.Router
}

// New builds the application. With the postgres driver it blocks until the
// pool is bound or the retries run out, ctx cancels the wait.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "role-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	verifier, err := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTLeeway)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.closeDatabase(context.Background())
		return nil, err
	}
	return app, nil
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("role service starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DBDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.closeDatabase(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains HTTP first, so in-flight requests hand their connections
// back, then closes the pool. Both share SHUTDOWN_GRACE_PERIOD.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down role service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeDatabase(ctx); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("role service stopped")
	return nil
}

func (app *Application) closeDatabase(ctx context.Context) error {
	if app.pool == nil {
		return nil
	}
	return app.pool.Shutdown(ctx)
}

// initDatabase binds the pool and applies migrations, or sets up the
// in-memory store. DEV_SEED_USERS are created for either driver.
func (app *Application) initDatabase(ctx context.Context) error {
	switch app.cfg.DBDriver {
	case DriverMemory:
		app.db = memory.NewStore()
		app.logger.Warn("using in-memory store, data is lost on restart")

	case DriverPostgres:
		app.pool = dbpool.NewManager(app.cfg.PoolConfig(), dbpool.WithLogger(app.logger))
		if err := app.pool.Startup(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		db := postgres.NewStore(app.pool)
		if err := db.ApplyMigrations(); err != nil {
			_ = app.pool.Shutdown(context.Background())
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}
		app.db = db
		app.logger.Info("database migrations applied successfully")

	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DBDriver)
	}

	if err := app.seedUsers(ctx); err != nil {
		_ = app.closeDatabase(context.Background())
		return err
	}
	return nil
}

// seedUsers creates the configured users, leaving existing ones alone.
func (app *Application) seedUsers(ctx context.Context) error {
	now := time.Now().UTC()
	created := 0
	for _, id := range app.cfg.DevSeedUsers {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		err := app.db.Users().CreateUser(ctx, domain.User{ID: id, CreatedAt: now, UpdatedAt: now})
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
		case err != nil:
			return fmt.Errorf("seed user %s: %w", id, err)
		default:
			created++
		}
	}
	if created > 0 {
		app.logger.Warn("seeded development users", "created", created)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	proxies, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Verifier:       app.verifier,
		ScopePrefix:    app.cfg.ACLScopePrefix,
		BuildVersion:   BuildVersion,
		Logger:         app.logger,
		Store:          app.db,
		Pool:           app.pool,
		WriteLimit:     app.cfg.WriteLimit(),
		ReadLimit:      app.cfg.ReadLimit(),
		TrustedProxies: proxies,
	})
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
