package dbpool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
)

type pgxPool struct {
	*pgxpool.Pool
}

func (p pgxPool) Acquire(ctx context.Context) (Conn, error) {
	c, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p pgxPool) Stat() Stats {
	s := p.Pool.Stat()
	return Stats{
		Acquired: s.AcquiredConns(),
		Idle:     s.IdleConns(),
		Total:    s.TotalConns(),
		Max:      s.MaxConns(),
	}
}

// PgxOpener opens a pgxpool.Pool. The returned pool has not been pinged.
func PgxOpener(log *slog.Logger) Opener {
	return func(ctx context.Context, cfg Config) (Pool, error) {
		pcfg, err := pgxpool.ParseConfig(cfg.ConnString())
		if err != nil {
			return nil, fmt.Errorf("parse dsn: %w", err)
		}
		if cfg.MaxSize > 0 {
			pcfg.MaxConns = cfg.MaxSize
		}
		if cfg.MinSize > 0 {
			pcfg.MinConns = min(cfg.MinSize, pcfg.MaxConns)
		}
		if cfg.Echo {
			pcfg.ConnConfig.Tracer = &tracelog.TraceLog{
				Logger:   echoLogger(log),
				LogLevel: tracelog.LogLevelDebug,
			}
		}

		p, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			return nil, err
		}
		return pgxPool{Pool: p}, nil
	}
}

func echoLogger(log *slog.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]any, 0, len(data)*2)
		for k, v := range data {
			attrs = append(attrs, k, v)
		}
		lvl := slog.LevelDebug
		if level <= tracelog.LogLevelError && level != tracelog.LogLevelNone {
			lvl = slog.LevelError
		}
		log.Log(ctx, lvl, "db: "+msg, attrs...)
	})
}
