package dbpool_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeQuerier struct{}

func (fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (fakeQuerier) Begin(context.Context) (pgx.Tx, error)                   { return nil, nil }

type fakeConn struct {
	fakeQuerier
	pool *fakePool
	once sync.Once
}

func (c *fakeConn) Release() {
	c.once.Do(func() {
		c.pool.acquired.Add(-1)
		c.pool.releases.Add(1)
		c.pool.cond.L.Lock()
		c.pool.cond.Broadcast()
		c.pool.cond.L.Unlock()
	})
}

// fakePool counts checkouts and, like pgxpool, blocks Close until every
// acquired connection is back.
type fakePool struct {
	fakeQuerier
	pingErr  error
	acquires atomic.Int32
	releases atomic.Int32
	acquired atomic.Int32
	closed   atomic.Bool
	cond     *sync.Cond
}

func newFakePool() *fakePool {
	return &fakePool{cond: sync.NewCond(&sync.Mutex{})}
}

func (p *fakePool) Acquire(context.Context) (dbpool.Conn, error) {
	p.acquires.Add(1)
	p.acquired.Add(1)
	return &fakeConn{pool: p}, nil
}

func (p *fakePool) Ping(context.Context) error { return p.pingErr }

func (p *fakePool) Stat() dbpool.Stats {
	return dbpool.Stats{Acquired: p.acquired.Load(), Max: 10}
}

func (p *fakePool) Close() {
	p.cond.L.Lock()
	for p.acquired.Load() > 0 {
		p.cond.Wait()
	}
	p.cond.L.Unlock()
	p.closed.Store(true)
}

// opener fails the first `failures` calls, then returns pool.
type opener struct {
	calls    atomic.Int32
	failures int32
	pool     *fakePool
}

func (o *opener) open(context.Context, dbpool.Config) (dbpool.Pool, error) {
	if n := o.calls.Add(1); n <= o.failures {
		return nil, errRefused
	}
	return o.pool, nil
}
