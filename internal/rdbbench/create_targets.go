package rdbbench

import (
	"database/sql"
	"fmt"
	"os"
	"path"

	"github.com/rdbgo/rdb"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// benchTarget abstracts the APIs under comparison: the rdb wrapper on one
// side and database/sql drivers on the other.
type benchTarget interface {
	Name() string
	Exec(sql string) error
	InsertUser(created int64, email string, active int64) error
	ReadUsers() (int, error)
	InsertDoc(created int64, body string) error
	ReadDocs() (int, error)
	Close() error
}

func benchDBPath(dir, name string) (string, error) {
	dbPath := path.Join(dir, name, "bench.db")
	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return "", err
	}
	fmt.Printf("%s db path: %s\n", name, dbPath)
	return dbPath, nil
}

// rdbTarget drives this repository's wrapper, reusing a prepared insert
// statement across rows through bind + step + reset.
type rdbTarget struct {
	db         *rdb.DB
	insertUser *rdb.Stmt
	insertDoc  *rdb.Stmt
}

func createRdbTarget(dir string) (*rdbTarget, error) {
	dbPath, err := benchDBPath(dir, "rdb")
	if err != nil {
		return nil, err
	}

	db, err := rdb.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return &rdbTarget{db: db}, nil
}

func (t *rdbTarget) Name() string { return "rdbgo/rdb" }

func (t *rdbTarget) Exec(query string) error { return t.db.Execute(query) }

func (t *rdbTarget) InsertUser(created int64, email string, active int64) error {
	if t.insertUser == nil {
		stmt, err := t.db.Prepare("INSERT INTO users (created, email, active) VALUES (?, ?, ?)")
		if err != nil {
			return err
		}
		t.insertUser = stmt
	}

	if err := t.insertUser.Bind(1, created); err != nil {
		return err
	}
	if err := t.insertUser.Bind(2, email); err != nil {
		return err
	}
	if err := t.insertUser.Bind(3, active); err != nil {
		return err
	}
	if _, err := t.insertUser.Step(); err != nil {
		return err
	}
	return t.insertUser.Reset()
}

func (t *rdbTarget) ReadUsers() (int, error) {
	stmt, err := t.db.Prepare("SELECT id, created, email, active FROM users ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	err = stmt.ForEachRow(func(row *rdb.Stmt) error {
		_ = row.ColumnInt(0)
		_ = row.ColumnInt(1)
		_ = row.ColumnText(2)
		_ = row.ColumnInt(3)
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (t *rdbTarget) InsertDoc(created int64, body string) error {
	if t.insertDoc == nil {
		stmt, err := t.db.Prepare("INSERT INTO docs (created, body) VALUES (?, ?)")
		if err != nil {
			return err
		}
		t.insertDoc = stmt
	}

	if err := t.insertDoc.Bind(1, created); err != nil {
		return err
	}
	if err := t.insertDoc.Bind(2, body); err != nil {
		return err
	}
	if _, err := t.insertDoc.Step(); err != nil {
		return err
	}
	return t.insertDoc.Reset()
}

func (t *rdbTarget) ReadDocs() (int, error) {
	stmt, err := t.db.Prepare("SELECT id, created, body FROM docs ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	err = stmt.ForEachRow(func(row *rdb.Stmt) error {
		_ = row.ColumnText(2)
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (t *rdbTarget) Close() error {
	if t.insertUser != nil {
		_ = t.insertUser.Close()
	}
	if t.insertDoc != nil {
		_ = t.insertDoc.Close()
	}
	return t.db.Close()
}

// sqlTarget drives a registered database/sql driver.
type sqlTarget struct {
	name string
	db   *sql.DB
}

func createMattnTarget(dir string) (*sqlTarget, error) {
	dbPath, err := benchDBPath(dir, "mattn")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &sqlTarget{name: "mattn/go-sqlite3", db: db}, nil
}

func createModerncTarget(dir string) (*sqlTarget, error) {
	dbPath, err := benchDBPath(dir, "modernc")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &sqlTarget{name: "modernc.org/sqlite", db: db}, nil
}

func (t *sqlTarget) Name() string { return t.name }

func (t *sqlTarget) Exec(query string) error {
	_, err := t.db.Exec(query)
	return err
}

func (t *sqlTarget) InsertUser(created int64, email string, active int64) error {
	_, err := t.db.Exec(
		"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
		created, email, active,
	)
	return err
}

func (t *sqlTarget) ReadUsers() (int, error) {
	rows, err := t.db.Query("SELECT id, created, email, active FROM users ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, created, active int64
		var email string
		if err := rows.Scan(&id, &created, &email, &active); err != nil {
			return 0, err
		}
		count++
	}
	return count, rows.Err()
}

func (t *sqlTarget) InsertDoc(created int64, body string) error {
	_, err := t.db.Exec("INSERT INTO docs (created, body) VALUES (?, ?)", created, body)
	return err
}

func (t *sqlTarget) ReadDocs() (int, error) {
	rows, err := t.db.Query("SELECT id, created, body FROM docs ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, created int64
		var body string
		if err := rows.Scan(&id, &created, &body); err != nil {
			return 0, err
		}
		count++
	}
	return count, rows.Err()
}

func (t *sqlTarget) Close() error { return t.db.Close() }
