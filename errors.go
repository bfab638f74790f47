package rdb

import (
	"errors"
	"fmt"
)

var (
	errConnClosed = errors.New("connection is closed")
	errStmtClosed = errors.New("statement is finalized")
)

// ConnectionError reports a failure to open or close the database file
// backing a connection.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rdb: database %q: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a failed SQL operation. Err carries the engine's raw
// diagnostic text; no classification is applied beyond "the query failed"
// and no retries are performed.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("rdb: %v", e.Err)
	}
	return fmt.Sprintf("rdb: %v (query: %s)", e.Err, e.SQL)
}

func (e *QueryError) Unwrap() error { return e.Err }

// diagnostic extracts the engine diagnostic from an error produced by this
// package, for callers that report errors as plain strings.
func diagnostic(err error) string {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Err.Error()
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return ce.Err.Error()
	}
	return err.Error()
}
