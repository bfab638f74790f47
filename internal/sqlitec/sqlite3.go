package sqlitec

import (
	"errors"
	"fmt"
	"unsafe"

	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	sqlite3 "modernc.org/sqlite/lib"
)

// ptrSize is the size of a C pointer slot used for out parameters.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Conn represents a high-level connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	tls *libc.TLS
	cDB uintptr
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt uintptr

	// allocs holds the C memory backing text and blob bindings. SQLite is
	// told the memory is static, so it must stay alive until Finalize.
	allocs []uintptr
}

// LastError returns the last error message from the SQLite database.
func (conn *Conn) LastError() error {
	if conn.cDB == 0 {
		return errors.New("failed to get last error: database connection is nil")
	}
	return errors.New(libc.GoString(sqlite3.Xsqlite3_errmsg(conn.tls, conn.cDB)))
}

// Open opens a new SQLite database connection using the given path.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, error) {
	tls := libc.NewTLS()

	cFilePath, err := libc.CString(filePath)
	if err != nil {
		tls.Close()
		return nil, fmt.Errorf("failed to copy database path: %w", err)
	}
	defer libc.Xfree(tls, cFilePath)

	pDB := libc.Xmalloc(tls, types.Size_t(ptrSize))
	if pDB == 0 {
		tls.Close()
		return nil, errors.New("failed to allocate connection handle slot")
	}
	defer libc.Xfree(tls, pDB)

	flags := int32(sqlite3.SQLITE_OPEN_READWRITE | sqlite3.SQLITE_OPEN_CREATE)
	resCode := sqlite3.Xsqlite3_open_v2(tls, cFilePath, pDB, flags, 0)
	db := *(*uintptr)(unsafe.Pointer(pDB))
	if resCode != sqlite3.SQLITE_OK {
		errMsg := (&Conn{tls: tls, cDB: db}).LastError()
		if db != 0 {
			_ = sqlite3.Xsqlite3_close_v2(tls, db)
		}
		tls.Close()
		return nil, fmt.Errorf("failed to open database: %s: %s", getResCodeStr(resCode), errMsg)
	}

	return &Conn{tls: tls, cDB: db}, nil
}

// Close finalizes the connection to the SQLite database.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == 0 {
		return nil
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := sqlite3.Xsqlite3_close_v2(conn.tls, conn.cDB)
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to close database: %s: %s", getResCodeStr(resCode), conn.LastError())
	}
	conn.cDB = 0
	conn.tls.Close()
	conn.tls = nil

	return nil
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	if conn.cDB == 0 {
		return 0
	}
	return int64(sqlite3.Xsqlite3_last_insert_rowid(conn.tls, conn.cDB))
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) RowsAffected() int64 {
	if conn.cDB == 0 {
		return 0
	}
	return int64(sqlite3.Xsqlite3_changes(conn.tls, conn.cDB))
}

// Exec executes the given SQL text on the SQLite database connection from
// start to finish, without returning any data. The text may contain several
// statements separated by semicolons.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(query string) error {
	if conn.cDB == 0 {
		return errors.New("cannot execute on a closed connection")
	}

	cQuery, err := libc.CString(query)
	if err != nil {
		return fmt.Errorf("failed to copy query text: %w", err)
	}
	defer libc.Xfree(conn.tls, cQuery)

	pErrMsg := libc.Xmalloc(conn.tls, types.Size_t(ptrSize))
	if pErrMsg == 0 {
		return errors.New("failed to allocate error message slot")
	}
	defer libc.Xfree(conn.tls, pErrMsg)
	*(*uintptr)(unsafe.Pointer(pErrMsg)) = 0

	resCode := sqlite3.Xsqlite3_exec(conn.tls, conn.cDB, cQuery, 0, 0, pErrMsg)
	if resCode != sqlite3.SQLITE_OK {
		errMsg := "unknown error"
		if cErrMsg := *(*uintptr)(unsafe.Pointer(pErrMsg)); cErrMsg != 0 {
			errMsg = libc.GoString(cErrMsg)
			sqlite3.Xsqlite3_free(conn.tls, cErrMsg)
		}
		return fmt.Errorf("failed to execute query: %s: %s", getResCodeStr(resCode), errMsg)
	}

	return nil
}

// Prepare compiles the given SQL query into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	if conn.cDB == 0 {
		return nil, errors.New("cannot prepare on a closed connection")
	}

	cQuery, err := libc.CString(query)
	if err != nil {
		return nil, fmt.Errorf("failed to copy query text: %w", err)
	}
	defer libc.Xfree(conn.tls, cQuery)

	pStmt := libc.Xmalloc(conn.tls, types.Size_t(ptrSize))
	if pStmt == 0 {
		return nil, errors.New("failed to allocate statement handle slot")
	}
	defer libc.Xfree(conn.tls, pStmt)

	resCode := sqlite3.Xsqlite3_prepare_v2(conn.tls, conn.cDB, cQuery, int32(-1), pStmt, 0)
	if resCode != sqlite3.SQLITE_OK {
		return nil, fmt.Errorf("failed to prepare statement: %s: %s", getResCodeStr(resCode), conn.LastError())
	}
	return &Stmt{conn: conn, cStmt: *(*uintptr)(unsafe.Pointer(pStmt))}, nil
}

// ReadOnly returns true if the given SQL query is read-only.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	if stmt.cStmt == 0 {
		return false
	}
	return sqlite3.Xsqlite3_stmt_readonly(stmt.conn.tls, stmt.cStmt) != 0
}

// BindInt64 binds an int64 parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_int64(stmt.conn.tls, stmt.cStmt, int32(index), value)
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to bind int64: %s", getResCodeStr(resCode))
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_double(stmt.conn.tls, stmt.cStmt, int32(index), value)
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to bind float64: %s", getResCodeStr(resCode))
	}
	return nil
}

// BindText binds a string parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	cStr, err := libc.CString(value)
	if err != nil {
		return fmt.Errorf("failed to copy text value: %w", err)
	}

	resCode := sqlite3.Xsqlite3_bind_text(stmt.conn.tls, stmt.cStmt, int32(index), cStr, int32(len(value)), 0)
	if resCode != sqlite3.SQLITE_OK {
		libc.Xfree(stmt.conn.tls, cStr)
		return fmt.Errorf("failed to bind text: %s", getResCodeStr(resCode))
	}
	stmt.allocs = append(stmt.allocs, cStr)
	return nil
}

// BindBlob binds a byte slice parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	if len(data) == 0 {
		return stmt.BindNull(index)
	}

	cData := libc.Xmalloc(stmt.conn.tls, types.Size_t(len(data)))
	if cData == 0 {
		return fmt.Errorf("failed to allocate %d bytes for blob", len(data))
	}
	copy((*libc.RawMem)(unsafe.Pointer(cData))[:len(data):len(data)], data)

	resCode := sqlite3.Xsqlite3_bind_blob(stmt.conn.tls, stmt.cStmt, int32(index), cData, int32(len(data)), 0)
	if resCode != sqlite3.SQLITE_OK {
		libc.Xfree(stmt.conn.tls, cData)
		return fmt.Errorf("failed to bind blob: %s", getResCodeStr(resCode))
	}
	stmt.allocs = append(stmt.allocs, cData)
	return nil
}

// BindNull binds a NULL value at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_null(stmt.conn.tls, stmt.cStmt, int32(index))
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to bind null: %s", getResCodeStr(resCode))
	}
	return nil
}

// BindParameterIndex returns the 1-based index of the named placeholder, or
// zero if no placeholder with that name exists in the statement. The name
// must include its prefix character (":", "@", or "$").
//
// https://www.sqlite.org/c3ref/bind_parameter_index.html
func (stmt *Stmt) BindParameterIndex(name string) int {
	if stmt.cStmt == 0 {
		return 0
	}

	cName, err := libc.CString(name)
	if err != nil {
		return 0
	}
	defer libc.Xfree(stmt.conn.tls, cName)

	return int(sqlite3.Xsqlite3_bind_parameter_index(stmt.conn.tls, stmt.cStmt, cName))
}

// Step advances the statement to the next row of data, returning true if a new row
// is available, or false if there are no more rows. If an error occurs, it is returned.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	if stmt.cStmt == 0 {
		return false, fmt.Errorf("cannot step a nil statement")
	}

	resCode := sqlite3.Xsqlite3_step(stmt.conn.tls, stmt.cStmt)

	if resCode == sqlite3.SQLITE_DONE {
		return false, nil
	}

	if resCode == sqlite3.SQLITE_ROW {
		return true, nil
	}

	return false, fmt.Errorf("failed to step statement: %s: %s", getResCodeStr(resCode), stmt.conn.LastError())
}

// Reset returns the statement to its initial state so it can be stepped
// again. Existing bindings are kept.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot reset a nil statement")
	}

	// sqlite3_reset repeats the error code of the preceding step.
	resCode := sqlite3.Xsqlite3_reset(stmt.conn.tls, stmt.cStmt)
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to reset statement: %s", getResCodeStr(resCode))
	}
	return nil
}

// ColumnCount returns the number of columns in the current result row.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	if stmt.cStmt == 0 {
		return 0
	}
	return int(sqlite3.Xsqlite3_column_count(stmt.conn.tls, stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	if stmt.cStmt == 0 {
		return ""
	}
	return libc.GoString(sqlite3.Xsqlite3_column_name(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnType returns the fundamental datatype code of the column at the
// given index in the current row (SQLITE_INTEGER, SQLITE_FLOAT, SQLITE_TEXT,
// SQLITE_BLOB, or SQLITE_NULL).
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnType(colIndex int) int {
	if stmt.cStmt == 0 {
		return sqlite3.SQLITE_NULL
	}
	return int(sqlite3.Xsqlite3_column_type(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	if stmt.cStmt == 0 {
		return 0
	}
	return int64(sqlite3.Xsqlite3_column_int64(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnFloat64 returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnFloat64(colIndex int) float64 {
	if stmt.cStmt == 0 {
		return 0
	}
	return float64(sqlite3.Xsqlite3_column_double(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnText returns the column value at the given index as a string. A NULL
// value yields an empty string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	if stmt.cStmt == 0 {
		return ""
	}

	text := sqlite3.Xsqlite3_column_text(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	if text == 0 {
		return ""
	}
	length := sqlite3.Xsqlite3_column_bytes(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	copy(buf, (*libc.RawMem)(unsafe.Pointer(text))[:length:length])
	return string(buf)
}

// ColumnBlob returns the column value at the given index as a byte slice.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	if stmt.cStmt == 0 {
		return nil
	}

	size := sqlite3.Xsqlite3_column_bytes(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	if size <= 0 {
		return nil
	}
	dataPtr := sqlite3.Xsqlite3_column_blob(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	if dataPtr == 0 {
		return nil
	}
	buf := make([]byte, size)
	copy(buf, (*libc.RawMem)(unsafe.Pointer(dataPtr))[:size:size])
	return buf
}

// Finalize frees the resources associated with this statement. It is a no-op
// on a statement that is already finalized or whose connection is closed.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == 0 {
		return nil
	}
	if stmt.conn.cDB == 0 {
		// The connection was torn down first; sqlite3_close_v2 already
		// reclaimed the handle, so the statement only forgets it.
		stmt.cStmt = 0
		stmt.allocs = nil
		return nil
	}

	resCode := sqlite3.Xsqlite3_finalize(stmt.conn.tls, stmt.cStmt)
	for _, p := range stmt.allocs {
		libc.Xfree(stmt.conn.tls, p)
	}
	stmt.allocs = nil
	if resCode != sqlite3.SQLITE_OK {
		return fmt.Errorf("failed to finalize statement: %s: %s", getResCodeStr(resCode), stmt.conn.LastError())
	}
	stmt.cStmt = 0

	return nil
}
