package dbpool

import (
	"context"
	"sync"
)

// LazyConn checks a connection out of the pool on first use and hands the
// same connection back on every later Get.
type LazyConn struct {
	pool Pool

	mu       sync.Mutex
	conn     Conn
	released bool
}

// NewLazyConn wraps p without acquiring anything.
func NewLazyConn(p Pool) *LazyConn {
	return &LazyConn{pool: p}
}

// Get returns the connection, acquiring it if needed.
func (l *LazyConn) Get(ctx context.Context) (Querier, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return nil, ErrReleased
	}
	if l.conn == nil {
		c, err := l.pool.Acquire(ctx)
		if err != nil {
			return nil, &ConnectionError{Op: "acquire", Err: err}
		}
		l.conn = c
	}
	return l.conn, nil
}

// Acquired reports whether a connection is currently checked out.
func (l *LazyConn) Acquired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn != nil
}

// Release returns the connection, if any. Safe to call more than once.
func (l *LazyConn) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		l.conn.Release()
		l.conn = nil
	}
	l.released = true
}

type connKey struct{}

// WithConn attaches lc to ctx.
func WithConn(ctx context.Context, lc *LazyConn) context.Context {
	return context.WithValue(ctx, connKey{}, lc)
}

// ConnFromContext returns the request's connection, if one was bound.
func ConnFromContext(ctx context.Context) (*LazyConn, bool) {
	lc, ok := ctx.Value(connKey{}).(*LazyConn)
	return lc, ok && lc != nil
}
