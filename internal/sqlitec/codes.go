package sqlitec

import (
	"fmt"

	sqlite3 "modernc.org/sqlite/lib"
)

// Fundamental datatype codes returned by Stmt.ColumnType.
//
// https://www.sqlite.org/c3ref/c_blob.html
const (
	TypeInteger = sqlite3.SQLITE_INTEGER
	TypeFloat   = sqlite3.SQLITE_FLOAT
	TypeText    = sqlite3.SQLITE_TEXT
	TypeBlob    = sqlite3.SQLITE_BLOB
	TypeNull    = sqlite3.SQLITE_NULL
)

// resCodeStrs maps the primary SQLite result codes to their symbolic names.
//
// https://www.sqlite.org/rescode.html
var resCodeStrs = map[int32]string{
	sqlite3.SQLITE_OK:         "SQLITE_OK",
	sqlite3.SQLITE_ERROR:      "SQLITE_ERROR",
	sqlite3.SQLITE_INTERNAL:   "SQLITE_INTERNAL",
	sqlite3.SQLITE_PERM:       "SQLITE_PERM",
	sqlite3.SQLITE_ABORT:      "SQLITE_ABORT",
	sqlite3.SQLITE_BUSY:       "SQLITE_BUSY",
	sqlite3.SQLITE_LOCKED:     "SQLITE_LOCKED",
	sqlite3.SQLITE_NOMEM:      "SQLITE_NOMEM",
	sqlite3.SQLITE_READONLY:   "SQLITE_READONLY",
	sqlite3.SQLITE_INTERRUPT:  "SQLITE_INTERRUPT",
	sqlite3.SQLITE_IOERR:      "SQLITE_IOERR",
	sqlite3.SQLITE_CORRUPT:    "SQLITE_CORRUPT",
	sqlite3.SQLITE_NOTFOUND:   "SQLITE_NOTFOUND",
	sqlite3.SQLITE_FULL:       "SQLITE_FULL",
	sqlite3.SQLITE_CANTOPEN:   "SQLITE_CANTOPEN",
	sqlite3.SQLITE_PROTOCOL:   "SQLITE_PROTOCOL",
	sqlite3.SQLITE_EMPTY:      "SQLITE_EMPTY",
	sqlite3.SQLITE_SCHEMA:     "SQLITE_SCHEMA",
	sqlite3.SQLITE_TOOBIG:     "SQLITE_TOOBIG",
	sqlite3.SQLITE_CONSTRAINT: "SQLITE_CONSTRAINT",
	sqlite3.SQLITE_MISMATCH:   "SQLITE_MISMATCH",
	sqlite3.SQLITE_MISUSE:     "SQLITE_MISUSE",
	sqlite3.SQLITE_NOLFS:      "SQLITE_NOLFS",
	sqlite3.SQLITE_AUTH:       "SQLITE_AUTH",
	sqlite3.SQLITE_FORMAT:     "SQLITE_FORMAT",
	sqlite3.SQLITE_RANGE:      "SQLITE_RANGE",
	sqlite3.SQLITE_NOTADB:     "SQLITE_NOTADB",
	sqlite3.SQLITE_NOTICE:     "SQLITE_NOTICE",
	sqlite3.SQLITE_WARNING:    "SQLITE_WARNING",
	sqlite3.SQLITE_ROW:        "SQLITE_ROW",
	sqlite3.SQLITE_DONE:       "SQLITE_DONE",
}

// getResCodeStr returns the symbolic name of a SQLite result code. Extended
// result codes fall back to their primary code name.
func getResCodeStr(resCode int32) string {
	if name, ok := resCodeStrs[resCode]; ok {
		return name
	}
	if name, ok := resCodeStrs[resCode&0xff]; ok {
		return fmt.Sprintf("%s(%d)", name, resCode)
	}
	return fmt.Sprintf("SQLITE_UNKNOWN(%d)", resCode)
}
