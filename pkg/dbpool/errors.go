package dbpool

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection matches every *ConnectionError.
	ErrConnection = errors.New("dbpool: connection error")

	// ErrNotBound is returned when the pool is used before Bind or after Shutdown.
	ErrNotBound = errors.New("dbpool: pool not bound")

	// ErrReleased is returned by LazyConn.Get after Release.
	ErrReleased = errors.New("dbpool: connection already released")
)

// ConnectionError reports a failure to open, reach or close the pool.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("dbpool: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }
