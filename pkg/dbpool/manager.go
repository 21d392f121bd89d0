package dbpool

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager owns the bound pool. Only the pool pointer is guarded, the pool
// itself is safe for concurrent use.
type Manager struct {
	cfg   Config
	log   *slog.Logger
	open  Opener
	sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	pool Pool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger, slog.Default otherwise.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithOpener replaces the pgx opener.
func WithOpener(open Opener) Option {
	return func(m *Manager) { m.open = open }
}

// WithSleeper replaces the wait between startup attempts.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(m *Manager) { m.sleep = sleep }
}

// NewManager returns an unbound manager.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:   cfg,
		log:   slog.Default(),
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.open == nil {
		m.open = PgxOpener(m.log)
	}
	m.log = m.log.With("component", "dbpool")
	return m
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() Config { return m.cfg }

// Bind opens and pings the pool. A second Bind keeps the existing pool.
func (m *Manager) Bind(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		m.log.Warn("pool already bound, keeping existing pool")
		return nil
	}

	p, err := m.open(ctx, m.cfg)
	if err != nil {
		return &ConnectionError{Op: "open", Err: err}
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return &ConnectionError{Op: "ping", Err: err}
	}

	m.pool = p
	return nil
}

// Startup binds the pool, retrying up to RetryLimit attempts with
// RetryInterval between them. The last error is returned once attempts run
// out.
func (m *Manager) Startup(ctx context.Context) error {
	limit := max(m.cfg.RetryLimit, 1)
	log := m.log.With("dsn", m.cfg.Redacted())
	log.Info("connecting to the database")

	for attempt := 1; ; attempt++ {
		err := m.Bind(ctx)
		if err == nil {
			log.Info("database connection pool created",
				"attempt", attempt,
				"min_size", m.cfg.MinSize,
				"max_size", m.cfg.MaxSize,
			)
			return nil
		}

		log.Error("database connection failed", "attempt", attempt, "err", err)
		if attempt >= limit {
			log.Error("max retries reached", "retry_limit", limit)
			return err
		}

		log.Info("waiting for the database", "retry_in", m.cfg.RetryInterval)
		if serr := m.sleep(ctx, m.cfg.RetryInterval); serr != nil {
			return &ConnectionError{Op: "startup", Err: serr}
		}
	}
}

// Shutdown unbinds and closes the pool, waiting for checked out
// connections until ctx is done. Shutting down an unbound manager is a
// no-op.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	p := m.pool
	m.pool = nil
	m.mu.Unlock()

	if p == nil {
		m.log.Info("shutdown requested but no pool is bound")
		return nil
	}

	m.log.Info("closing database connection pool", "acquired", p.Stat().Acquired)

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
		m.log.Info("database connection pool closed")
		return nil
	case <-ctx.Done():
		m.log.Error("database connection pool close timed out", "err", ctx.Err())
		return &ConnectionError{Op: "shutdown", Err: ctx.Err()}
	}
}

// Pool returns the bound pool.
func (m *Manager) Pool() (Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool == nil {
		return nil, ErrNotBound
	}
	return m.pool, nil
}

// Querier resolves what a statement should run on: the request's
// connection when one is bound to ctx, the pool otherwise.
func (m *Manager) Querier(ctx context.Context) (Querier, error) {
	if lc, ok := ConnFromContext(ctx); ok {
		return lc.Get(ctx)
	}
	return m.Pool()
}

// Ping checks the bound pool can reach the database.
func (m *Manager) Ping(ctx context.Context) error {
	p, err := m.Pool()
	if err != nil {
		return err
	}
	if err := p.Ping(ctx); err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	return nil
}

// Stats reports pool usage.
func (m *Manager) Stats() (Stats, error) {
	p, err := m.Pool()
	if err != nil {
		return Stats{}, err
	}
	return p.Stat(), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
