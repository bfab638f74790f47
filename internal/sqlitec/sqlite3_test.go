package sqlitec

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteC(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, conn)
		assert.NoError(t, conn.Close())
	})

	t.Run("CloseTwice", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NoError(t, conn.Close())
		assert.NoError(t, conn.Close())
	})

	t.Run("OpenFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		conn, err := Open(path)
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)"))
		assert.FileExists(t, path)
	})

	t.Run("OpenInvalidPath", func(t *testing.T) {
		conn, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "test.db"))
		assert.Error(t, err)
		assert.Nil(t, conn)
	})

	t.Run("ExecError", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		err = conn.Exec("NOT REAL SQL")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("PrepareError", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT * FROM missing_table")
		assert.Error(t, err)
		assert.Nil(t, stmt)
		assert.Contains(t, err.Error(), "missing_table")
	})

	t.Run("InsertMultipleTypes", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		err = conn.Exec(`
			CREATE TABLE test_types (
				id INTEGER PRIMARY KEY,
				num_int INTEGER,
				num_float REAL,
				txt TEXT,
				bytes BLOB,
				nullable TEXT
			)
		`)
		assert.NoError(t, err)

		stmt, err := conn.Prepare(`
			INSERT INTO test_types (num_int, num_float, txt, bytes, nullable)
			VALUES (?, ?, ?, ?, ?)
		`)
		assert.NoError(t, err)

		assert.NoError(t, stmt.BindInt64(1, 123))
		assert.NoError(t, stmt.BindFloat64(2, 3.14))
		assert.NoError(t, stmt.BindText(3, "hola"))
		assert.NoError(t, stmt.BindBlob(4, []byte("raw")))
		assert.NoError(t, stmt.BindNull(5))

		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)
		assert.NoError(t, stmt.Finalize())
		assert.Equal(t, int64(1), conn.RowsAffected())

		sel, err := conn.Prepare("SELECT num_int, num_float, txt, bytes, nullable FROM test_types")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err = sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)

		assert.Equal(t, int64(123), sel.ColumnInt64(0))
		assert.Equal(t, 3.14, sel.ColumnFloat64(1))
		assert.Equal(t, "hola", sel.ColumnText(2))
		assert.Equal(t, []byte("raw"), sel.ColumnBlob(3))
		assert.Equal(t, "", sel.ColumnText(4))
	})

	t.Run("NamedParameters", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE named_test (id INTEGER PRIMARY KEY, value TEXT)"))

		// Placeholder name variants: https://www.sqlite.org/lang_expr.html#varparam
		for _, name := range []string{":val", "@val", "$val"} {
			stmt, err := conn.Prepare("INSERT INTO named_test (value) VALUES (" + name + ")")
			assert.NoError(t, err)

			idx := stmt.BindParameterIndex(name)
			assert.Equal(t, 1, idx)
			assert.Equal(t, 0, stmt.BindParameterIndex(":missing"))

			value := uuid.NewString()
			assert.NoError(t, stmt.BindText(idx, value))
			_, err = stmt.Step()
			assert.NoError(t, err)
			assert.NoError(t, stmt.Finalize())

			sel, err := conn.Prepare("SELECT value FROM named_test ORDER BY id DESC LIMIT 1")
			assert.NoError(t, err)
			hasRow, err := sel.Step()
			assert.NoError(t, err)
			assert.True(t, hasRow)
			assert.Equal(t, value, sel.ColumnText(0))
			assert.NoError(t, sel.Finalize())
		}
	})

	t.Run("MultipleRowsAndReset", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE multi (id INTEGER PRIMARY KEY, val TEXT)"))
		for range 3 {
			assert.NoError(t, conn.Exec("INSERT INTO multi (val) VALUES ('x')"))
		}

		stmt, err := conn.Prepare("SELECT id, val FROM multi ORDER BY id")
		assert.NoError(t, err)
		defer stmt.Finalize()

		countRows := func() int {
			count := 0
			for {
				hasRow, err := stmt.Step()
				assert.NoError(t, err)
				if !hasRow {
					break
				}
				count++
			}
			return count
		}

		assert.Equal(t, 3, countRows())
		assert.NoError(t, stmt.Reset())
		assert.Equal(t, 3, countRows())
	})

	t.Run("ColumnMetadata", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE meta (a INTEGER, b REAL, c TEXT)"))
		assert.NoError(t, conn.Exec("INSERT INTO meta VALUES (1, 2.5, 'z')"))

		stmt, err := conn.Prepare("SELECT a, b, c FROM meta")
		assert.NoError(t, err)
		defer stmt.Finalize()

		assert.Equal(t, 3, stmt.ColumnCount())
		assert.Equal(t, "a", stmt.ColumnName(0))
		assert.Equal(t, "b", stmt.ColumnName(1))
		assert.Equal(t, "c", stmt.ColumnName(2))

		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, TypeInteger, stmt.ColumnType(0))
		assert.Equal(t, TypeFloat, stmt.ColumnType(1))
		assert.Equal(t, TypeText, stmt.ColumnType(2))
	})

	t.Run("LastInsertRowID", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE ids (id INTEGER PRIMARY KEY AUTOINCREMENT, v TEXT)"))
		assert.NoError(t, conn.Exec("INSERT INTO ids (v) VALUES ('a')"))
		assert.Equal(t, int64(1), conn.LastInsertRowID())
		assert.NoError(t, conn.Exec("INSERT INTO ids (v) VALUES ('b')"))
		assert.Equal(t, int64(2), conn.LastInsertRowID())
	})

	t.Run("ReadOnlyCheck", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)"))

		stmt, err := conn.Prepare("INSERT INTO test (val) VALUES (?)")
		assert.NoError(t, err)
		assert.False(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())

		stmt, err = conn.Prepare("SELECT * FROM test")
		assert.NoError(t, err)
		assert.True(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("FinalizeNilStmt", func(t *testing.T) {
		// Simulate a nil stmt to check that it doesn't crash
		stmt := &Stmt{}
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("StepConstraintViolation", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE uniq (id INTEGER PRIMARY KEY, v TEXT UNIQUE)"))
		assert.NoError(t, conn.Exec("INSERT INTO uniq (v) VALUES ('dup')"))

		stmt, err := conn.Prepare("INSERT INTO uniq (v) VALUES ('dup')")
		assert.NoError(t, err)
		defer stmt.Finalize()

		_, err = stmt.Step()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_CONSTRAINT")
	})

	t.Run("LargeBlob", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE blobtest (id INTEGER PRIMARY KEY, data BLOB)"))

		largeData := make([]byte, 1024*1024) // 1MB
		for i := range largeData {
			largeData[i] = byte(i % 256)
		}

		stmt, err := conn.Prepare("INSERT INTO blobtest (data) VALUES (?)")
		assert.NoError(t, err)
		assert.NoError(t, stmt.BindBlob(1, largeData))
		_, err = stmt.Step()
		assert.NoError(t, err)
		assert.NoError(t, stmt.Finalize())

		sel, err := conn.Prepare("SELECT data FROM blobtest")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err := sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, largeData, sel.ColumnBlob(0))
	})
}
