package rdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResults(t *testing.T) {
	t.Run("MaterializesAllRowsAsText", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, age INTEGER, score REAL)"))
		assert.NoError(t, db.Execute(`
			INSERT INTO users (name, age, score) VALUES
				('Alice', 30, 9.5),
				('Bob', 25, 7.25),
				('Charlie', 35, 8.0)
		`))

		res := db.Query("SELECT id, name, age, score FROM users WHERE age > 25 ORDER BY id")
		assert.Empty(t, res.Error)
		assert.Equal(t, 2, res.NumRows)
		assert.Equal(t, 4, res.NumFields)
		assert.Equal(t, []string{"id", "name", "age", "score"}, res.Columns)

		assert.Equal(t, "Alice", res.Rows[0]["name"])
		assert.Equal(t, "30", res.Rows[0]["age"])
		assert.Equal(t, "9.5", res.Rows[0]["score"])
		assert.Equal(t, "Charlie", res.Rows[1]["name"])
	})

	t.Run("RowsAreDetachedCopies", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE d (id INTEGER PRIMARY KEY, v TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO d (v) VALUES ('original')"))

		res := db.Query("SELECT v FROM d")
		assert.Empty(t, res.Error)

		assert.NoError(t, db.Execute("UPDATE d SET v = 'mutated'"))
		assert.NoError(t, db.Execute("DELETE FROM d"))

		assert.Equal(t, 1, res.NumRows)
		assert.Equal(t, "original", res.Rows[0]["v"])
	})

	t.Run("NullBecomesEmptyString", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE n (a TEXT, b TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO n (a, b) VALUES ('x', NULL)"))

		res := db.Query("SELECT a, b FROM n")
		assert.Empty(t, res.Error)
		assert.Equal(t, "x", res.Rows[0]["a"])
		assert.Equal(t, "", res.Rows[0]["b"])
	})

	t.Run("PrepareFailureSetsErrorField", func(t *testing.T) {
		db := newTestDB(t)

		res := db.Query("SELECT * FROM nonexistent_table")
		assert.NotNil(t, res)
		assert.Equal(t, 0, res.NumRows)
		assert.Empty(t, res.Rows)
		assert.NotEmpty(t, res.Error)
		assert.Contains(t, res.Error, "nonexistent_table")
	})

	t.Run("RuntimeFailureSetsErrorField", func(t *testing.T) {
		db := newTestDB(t)

		// Fails at step time, not at prepare time.
		res := db.Query("SELECT abs(-9223372036854775808)")
		assert.NotNil(t, res)
		assert.Equal(t, 0, res.NumRows)
		assert.Empty(t, res.Rows)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("NextCursor", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE c (id INTEGER PRIMARY KEY, v TEXT)"))
		assert.NoError(t, db.Execute("INSERT INTO c (v) VALUES ('a'), ('b')"))

		res := db.Query("SELECT v FROM c ORDER BY id")
		assert.Empty(t, res.Error)

		var row Row
		assert.True(t, res.Next(&row))
		assert.Equal(t, "a", row["v"])
		assert.True(t, res.Next(&row))
		assert.Equal(t, "b", row["v"])

		// Exhausted: false now and on every further call.
		assert.False(t, res.Next(&row))
		assert.False(t, res.Next(&row))
	})

	t.Run("NextOnErrorTable", func(t *testing.T) {
		db := newTestDB(t)

		res := db.Query("SELECT * FROM nope")
		var row Row
		assert.False(t, res.Next(&row))
	})

	t.Run("TableExists", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE present (id INTEGER PRIMARY KEY)"))

		assert.True(t, db.TableExists("present"))
		assert.False(t, db.TableExists("absent"))
		assert.False(t, db.TableExists("present'; DROP TABLE present; --"))
	})

	t.Run("Escape", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, db.Execute("CREATE TABLE e (v TEXT)"))

		unsafe := "O'Brien's \"quote\""
		assert.Equal(t, "O''Brien''s \"quote\"", Escape(unsafe))

		assert.NoError(t, db.Execute("INSERT INTO e (v) VALUES ('"+Escape(unsafe)+"')"))

		res := db.Query("SELECT v FROM e")
		assert.Empty(t, res.Error)
		assert.Equal(t, unsafe, res.Rows[0]["v"])
	})

	t.Run("QueryOnClosedDB", func(t *testing.T) {
		db, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NoError(t, db.Close())

		res := db.Query("SELECT 1")
		assert.Equal(t, 0, res.NumRows)
		assert.NotEmpty(t, res.Error)
	})
}
