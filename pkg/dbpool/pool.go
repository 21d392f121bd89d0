package dbpool

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the statement surface shared by pools, connections and
// transactions. pgx.Tx satisfies it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Conn is a connection checked out of a Pool.
type Conn interface {
	Querier
	Release()
}

// Pool is a bound connection pool.
type Pool interface {
	Querier
	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
	Stat() Stats
	// Close blocks until every acquired connection has been released.
	Close()
}

// Stats is a point in time view of the pool.
type Stats struct {
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
	Total    int32 `json:"total"`
	Max      int32 `json:"max"`
}

// Opener creates a pool from config. Tests swap it for a fake.
type Opener func(ctx context.Context, cfg Config) (Pool, error)
