package repl

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/orsinium-labs/enum"
	"github.com/rdbgo/rdb"
	"github.com/rdbgo/rdb/internal/rdbcli/styled"
	"github.com/rdbgo/rdb/internal/util/numutil"
)

// queryType represents the type of a given SQLite query.
type queryType = enum.Member[string]

var (
	queryTypeUnknown  = queryType{Value: "unknown"}
	queryTypeRead     = queryType{Value: "read"}
	queryTypeWrite    = queryType{Value: "write"}
	queryTypeBegin    = queryType{Value: "begin"}
	queryTypeCommit   = queryType{Value: "commit"}
	queryTypeRollback = queryType{Value: "rollback"}
)

// detectQueryType detects the type of query between read, write, begin,
// commit, and rollback, so the shell can route it through the matching part
// of the API.
func detectQueryType(db *rdb.DB, query string) queryType {
	trimmed := strings.ToLower(strings.TrimSpace(query))

	switch {
	case strings.HasPrefix(trimmed, "begin"):
		return queryTypeBegin
	case strings.HasPrefix(trimmed, "commit"):
		return queryTypeCommit
	case strings.HasPrefix(trimmed, "rollback"):
		return queryTypeRollback
	}

	stmt, err := db.Prepare(query)
	if err != nil {
		return queryTypeUnknown
	}
	defer stmt.Close()

	if stmt.ReadOnly() {
		return queryTypeRead
	}
	return queryTypeWrite
}

func cmdQuery(r *Repl, input string) {
	tw := styled.NewTableWriter()

	switch detectQueryType(r.db, input) {
	case queryTypeBegin:
		if r.tx != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{"A transaction is already open"})
			break
		}
		tx, err := r.db.Begin()
		if err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
			break
		}
		r.tx = tx
		tw.AppendHeader(table.Row{"OK"})
		tw.AppendRow(table.Row{"Transaction started"})

	case queryTypeCommit:
		if r.tx == nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{"No open transaction to commit"})
			break
		}
		if err := r.tx.Commit(); err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
			break
		}
		r.tx = nil
		tw.AppendHeader(table.Row{"OK"})
		tw.AppendRow(table.Row{"Transaction committed"})

	case queryTypeRollback:
		if r.tx == nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{"No open transaction to roll back"})
			break
		}
		if err := r.tx.Rollback(); err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
			break
		}
		r.tx = nil
		tw.AppendHeader(table.Row{"OK"})
		tw.AppendRow(table.Row{"Transaction rolled back"})

	case queryTypeWrite:
		if err := r.db.Execute(input); err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
			break
		}
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", r.db.RowsAffected(), r.db.LastInsertID()})

	default:
		// Reads, plus anything unidentifiable: the materializing facade
		// reports its own errors through the Error field.
		res := r.db.Query(input)
		if res.Error != "" {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{res.Error})
			break
		}

		header := table.Row{}
		for _, col := range res.Columns {
			header = append(header, col)
		}
		tw.AppendHeader(header)

		var row rdb.Row
		for res.Next(&row) {
			out := table.Row{}
			for _, col := range res.Columns {
				out = append(out, row[col])
			}
			tw.AppendRow(out)
		}
	}

	fmt.Println(tw.Render())

	if rows := tw.Length(); rows > 0 {
		_, _ = styled.DimmedColor().Printf("%s row(s)\n", numutil.IntWithCommas(rows))
	}
}
