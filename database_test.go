package rdb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDB(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, db.Close())
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NoError(t, db.Close())
		assert.NoError(t, db.Close())
	})

	t.Run("OpenCreatesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.db")
		db, err := Open(path)
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Execute("CREATE TABLE t (id INTEGER PRIMARY KEY)"))
		assert.FileExists(t, path)
	})

	t.Run("OpenInvalidPath", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "app.db"))
		assert.Error(t, err)
		assert.Nil(t, db)

		var connErr *ConnectionError
		assert.True(t, errors.As(err, &connErr))
	})

	t.Run("ExecuteError", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		err = db.Execute("NOT REAL SQL")
		assert.Error(t, err)

		var queryErr *QueryError
		assert.True(t, errors.As(err, &queryErr))
		assert.Contains(t, queryErr.Err.Error(), "syntax error")
	})

	t.Run("ExecuteMultipleStatements", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		err = db.Execute(`
			CREATE TABLE a (id INTEGER PRIMARY KEY);
			CREATE TABLE b (id INTEGER PRIMARY KEY);
			INSERT INTO a DEFAULT VALUES;
		`)
		assert.NoError(t, err)
		assert.True(t, db.TableExists("a"))
		assert.True(t, db.TableExists("b"))
	})

	t.Run("PrepareError", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		stmt, err := db.Prepare("SELECT * FROM missing_table")
		assert.Error(t, err)
		assert.Nil(t, stmt)

		var queryErr *QueryError
		assert.True(t, errors.As(err, &queryErr))
		assert.Contains(t, queryErr.Err.Error(), "missing_table")
	})

	t.Run("WriteVisibilityWithinConnection", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Execute("CREATE TABLE vis (id INTEGER PRIMARY KEY, v TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO vis (v) VALUES ('seen')"))

		stmt, err := db.Prepare("SELECT v FROM vis")
		assert.NoError(t, err)
		defer stmt.Close()

		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, "seen", stmt.ColumnText(0))
	})

	t.Run("LastInsertID", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Execute("CREATE TABLE ids (id INTEGER PRIMARY KEY AUTOINCREMENT, v TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO ids (v) VALUES ('a')"))
		assert.Equal(t, int64(1), db.LastInsertID())
		assert.NoError(t, db.Execute("INSERT INTO ids (v) VALUES ('b')"))
		assert.Equal(t, int64(2), db.LastInsertID())
	})

	t.Run("RowsAffected", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Execute("CREATE TABLE ra (id INTEGER PRIMARY KEY, v TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO ra (v) VALUES ('a'), ('b'), ('c')"))
		assert.Equal(t, int64(3), db.RowsAffected())
		assert.NoError(t, db.Execute("DELETE FROM ra WHERE id > 1"))
		assert.Equal(t, int64(2), db.RowsAffected())
	})

	t.Run("UseAfterCloseFailsFast", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NoError(t, db.Execute("CREATE TABLE t (id INTEGER PRIMARY KEY)"))

		stmt, err := db.Prepare("SELECT * FROM t")
		assert.NoError(t, err)

		assert.NoError(t, db.Close())

		err = db.Execute("INSERT INTO t DEFAULT VALUES")
		assert.Error(t, err)

		_, err = db.Prepare("SELECT 1")
		assert.Error(t, err)

		_, err = stmt.Step()
		assert.Error(t, err)
		assert.ErrorIs(t, err, errConnClosed)
	})
}
