package rdb

import (
	"github.com/rdbgo/rdb/internal/sqlitec"
)

// DB is an open connection to a SQLite database. It owns the engine handle:
// the handle is released exactly once, by the first Close call.
type DB struct {
	conn   *sqlitec.Conn
	path   string
	closed bool
}

// Open opens or creates the database file at path. It returns a
// *ConnectionError if the engine cannot open or create the file.
//
// The path ":memory:" opens a private in-memory database.
func Open(path string) (*DB, error) {
	conn, err := sqlitec.Open(path)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	return &DB{conn: conn, path: path}, nil
}

// Close releases the engine handle. It is safe to call on an already closed
// DB, in which case it is a no-op. Statements and transaction guards derived
// from this DB must not be used afterwards; they fail fast if they are.
func (db *DB) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true
	if err := db.conn.Close(); err != nil {
		return &ConnectionError{Path: db.path, Err: err}
	}
	return nil
}

// Execute runs one or more semicolon-separated statements with no parameters
// and no result capture. It returns a *QueryError carrying the engine
// diagnostic on failure and succeeds silently otherwise.
func (db *DB) Execute(sql string) error {
	if db.closed {
		return &QueryError{SQL: sql, Err: errConnClosed}
	}
	if err := db.conn.Exec(sql); err != nil {
		return &QueryError{SQL: sql, Err: err}
	}
	return nil
}

// Prepare compiles sql into a statement bound to this DB. The statement
// borrows the connection: it must be closed before, or together with, the
// DB, never used after it.
func (db *DB) Prepare(sql string) (*Stmt, error) {
	if db.closed {
		return nil, &QueryError{SQL: sql, Err: errConnClosed}
	}
	stmt, err := db.conn.Prepare(sql)
	if err != nil {
		return nil, &QueryError{SQL: sql, Err: err}
	}
	return &Stmt{db: db, stmt: stmt, sql: sql}, nil
}

// LastInsertID returns the rowid produced by the most recent successful
// INSERT on this connection. The value is meaningless if no insert has
// happened yet.
func (db *DB) LastInsertID() int64 {
	if db.closed {
		return 0
	}
	return db.conn.LastInsertRowID()
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent successful write statement on this connection.
func (db *DB) RowsAffected() int64 {
	if db.closed {
		return 0
	}
	return db.conn.RowsAffected()
}
