package rdb

import "strings"

// Row is one materialized result row: a mapping from column name to the
// value's textual representation. Column order is carried by
// Results.Columns.
type Row map[string]string

// Results is a fully materialized result table. Rows are detached copies,
// independent of the statement that produced them.
//
// This facade does not report failures through returned errors: when a query
// fails, Rows is empty and Error holds the engine diagnostic. Callers must
// check Error after every Query call.
type Results struct {
	Columns   []string
	Rows      []Row
	NumRows   int
	NumFields int
	Error     string

	cursor int
}

// Query executes sql and copies every produced row into a Results table,
// with all values stored as text regardless of the underlying column type.
// No parameter binding is available here; building the SQL string, and
// escaping anything interpolated into it, is the caller's responsibility.
//
// Query never returns an error: on failure the table has zero rows and a
// populated Error field.
func (db *DB) Query(sql string) *Results {
	stmt, err := db.Prepare(sql)
	if err != nil {
		return &Results{Error: diagnostic(err)}
	}
	defer stmt.Close()

	res := &Results{}
	res.Columns = make([]string, stmt.ColumnCount())
	for i := range res.Columns {
		res.Columns[i] = stmt.ColumnName(i)
	}
	res.NumFields = len(res.Columns)

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return &Results{Error: diagnostic(err)}
		}
		if !hasRow {
			break
		}
		row := make(Row, res.NumFields)
		for i, name := range res.Columns {
			if stmt.ColumnKind(i) == KindNull {
				row[name] = ""
				continue
			}
			row[name] = stmt.ColumnText(i)
		}
		res.Rows = append(res.Rows, row)
	}

	res.NumRows = len(res.Rows)
	return res
}

// Next copies the next materialized row into row and advances the internal
// cursor. Once the table is exhausted it returns false, and keeps returning
// false on every further call.
func (res *Results) Next(row *Row) bool {
	if res.cursor >= len(res.Rows) {
		return false
	}
	*row = res.Rows[res.cursor]
	res.cursor++
	return true
}

// TableExists reports whether a table with the given name exists, by
// querying the engine's schema metadata.
func (db *DB) TableExists(name string) bool {
	stmt, err := db.Prepare("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?")
	if err != nil {
		return false
	}
	defer stmt.Close()

	if err := stmt.Bind(1, name); err != nil {
		return false
	}
	hasRow, err := stmt.Step()
	if err != nil || !hasRow {
		return false
	}
	return stmt.ColumnInt(0) > 0
}

// Escape doubles single quotes in text so it can be interpolated into ad hoc
// SQL strings. It is a fallback for string-built SQL and strictly inferior
// to parameter binding, which should be preferred whenever possible.
func Escape(text string) string {
	return strings.ReplaceAll(text, "'", "''")
}
