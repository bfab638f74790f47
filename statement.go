package rdb

import (
	"fmt"

	"github.com/orsinium-labs/enum"
	"github.com/rdbgo/rdb/internal/sqlitec"
)

// Stmt is a compiled, parameterizable SQL statement. Bindings survive Reset,
// so a statement can be stepped repeatedly with or without re-binding.
//
// A Stmt borrows its DB and must be closed before the DB is.
type Stmt struct {
	db   *DB
	stmt *sqlitec.Stmt
	sql  string
}

// Kind identifies the fundamental datatype of a column in the current row.
type Kind = enum.Member[string]

var (
	KindInteger = Kind{Value: "integer"}
	KindFloat   = Kind{Value: "float"}
	KindText    = Kind{Value: "text"}
	KindBlob    = Kind{Value: "blob"}
	KindNull    = Kind{Value: "null"}

	// Kinds is the closed set of column kinds.
	Kinds = enum.New(KindInteger, KindFloat, KindText, KindBlob, KindNull)
)

func (s *Stmt) live() error {
	if s.db.closed {
		return errConnClosed
	}
	if s.stmt == nil {
		return errStmtClosed
	}
	return nil
}

// Close finalizes the statement. It is idempotent; only the first call
// releases the compiled-query handle.
func (s *Stmt) Close() error {
	if s.stmt == nil {
		return nil
	}
	stmt := s.stmt
	s.stmt = nil
	if err := stmt.Finalize(); err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}
	return nil
}

// Bind binds value at the given 1-based ordinal position. Supported value
// kinds are int, int64, float64, string, []byte, and nil. Re-binding a
// position before Reset overwrites the previous binding for that slot.
func (s *Stmt) Bind(index int, value any) error {
	if err := s.live(); err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}
	return s.bindValue(index, value)
}

// BindName binds value to the named placeholder, which may be written with
// or without its prefix character (":", "@", or "$"). Binding a name that
// does not occur in the statement is a silent no-op and leaves every other
// binding untouched; this mirrors long-standing behavior that callers rely
// on, so it is pinned by tests rather than turned into an error.
func (s *Stmt) BindName(name string, value any) error {
	if err := s.live(); err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}

	index := s.stmt.BindParameterIndex(name)
	if index == 0 && len(name) > 0 && name[0] != ':' && name[0] != '@' && name[0] != '$' {
		for _, prefix := range []string{":", "@", "$"} {
			if index = s.stmt.BindParameterIndex(prefix + name); index > 0 {
				break
			}
		}
	}
	if index == 0 {
		return nil
	}
	return s.bindValue(index, value)
}

func (s *Stmt) bindValue(index int, value any) error {
	var err error
	switch v := value.(type) {
	case int:
		err = s.stmt.BindInt64(index, int64(v))
	case int64:
		err = s.stmt.BindInt64(index, v)
	case float64:
		err = s.stmt.BindFloat64(index, v)
	case string:
		err = s.stmt.BindText(index, v)
	case []byte:
		err = s.stmt.BindBlob(index, v)
	case nil:
		err = s.stmt.BindNull(index)
	default:
		err = fmt.Errorf("unsupported bind value of type %T", value)
	}
	if err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}
	return nil
}

// Step advances execution. It returns true when a result row is available
// and false when execution has completed. Any other engine status is
// returned as a *QueryError with the raw diagnostic. Stepping again after
// completion without Reset is outside the contract and must be avoided.
func (s *Stmt) Step() (bool, error) {
	if err := s.live(); err != nil {
		return false, &QueryError{SQL: s.sql, Err: err}
	}
	hasRow, err := s.stmt.Step()
	if err != nil {
		return false, &QueryError{SQL: s.sql, Err: err}
	}
	return hasRow, nil
}

// Reset returns the statement to its pre-execution state so it can be
// stepped again. The compiled SQL and the current bindings are preserved;
// Reset deliberately does not clear bindings.
func (s *Stmt) Reset() error {
	if err := s.live(); err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}
	if err := s.stmt.Reset(); err != nil {
		return &QueryError{SQL: s.sql, Err: err}
	}
	return nil
}

// ReadOnly reports whether the statement makes no direct changes to the
// database.
func (s *Stmt) ReadOnly() bool {
	if s.live() != nil {
		return false
	}
	return s.stmt.ReadOnly()
}

// ColumnCount returns the number of columns produced by the statement.
func (s *Stmt) ColumnCount() int {
	if s.live() != nil {
		return 0
	}
	return s.stmt.ColumnCount()
}

// ColumnName returns the name of the column at the given 0-based index.
func (s *Stmt) ColumnName(col int) string {
	if s.live() != nil {
		return ""
	}
	return s.stmt.ColumnName(col)
}

// ColumnKind returns the fundamental datatype of the column at the given
// 0-based index in the current row.
func (s *Stmt) ColumnKind(col int) Kind {
	if s.live() != nil {
		return KindNull
	}
	switch s.stmt.ColumnType(col) {
	case sqlitec.TypeInteger:
		return KindInteger
	case sqlitec.TypeFloat:
		return KindFloat
	case sqlitec.TypeText:
		return KindText
	case sqlitec.TypeBlob:
		return KindBlob
	default:
		return KindNull
	}
}

// ColumnInt returns the current row's column at the given 0-based index as
// an integer.
func (s *Stmt) ColumnInt(col int) int64 {
	if s.live() != nil {
		return 0
	}
	return s.stmt.ColumnInt64(col)
}

// ColumnFloat returns the current row's column at the given 0-based index as
// a floating-point value.
func (s *Stmt) ColumnFloat(col int) float64 {
	if s.live() != nil {
		return 0
	}
	return s.stmt.ColumnFloat64(col)
}

// ColumnText returns the current row's column at the given 0-based index as
// text. A NULL value yields an empty string rather than an error.
func (s *Stmt) ColumnText(col int) string {
	if s.live() != nil {
		return ""
	}
	return s.stmt.ColumnText(col)
}

// ForEachRow steps the statement and invokes fn once per produced row, in
// engine-determined order, then resets the statement. fn observes the
// statement positioned at each row in turn.
func (s *Stmt) ForEachRow(fn func(*Stmt) error) error {
	for {
		hasRow, err := s.Step()
		if err != nil {
			return err
		}
		if !hasRow {
			break
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return s.Reset()
}

// MapRows fully drains s, producing one mapped value per row, then resets it.
func MapRows[T any](s *Stmt, fn func(*Stmt) (T, error)) ([]T, error) {
	var results []T
	err := s.ForEachRow(func(row *Stmt) error {
		v, err := fn(row)
		if err != nil {
			return err
		}
		results = append(results, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Column fully drains s, collecting one column's value across all rows in
// engine order, then resets it. Calling it twice without touching the
// bindings yields the same sequence, since the drain ends in a reset.
func Column[T int64 | float64 | string](s *Stmt, col int) ([]T, error) {
	return MapRows(s, func(row *Stmt) (T, error) {
		var v T
		switch p := any(&v).(type) {
		case *int64:
			*p = row.ColumnInt(col)
		case *float64:
			*p = row.ColumnFloat(col)
		case *string:
			*p = row.ColumnText(col)
		}
		return v, nil
	})
}
