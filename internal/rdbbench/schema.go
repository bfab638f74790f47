package rdbbench

// recreateSchema drops all tables and recreates them.
func recreateSchema(target benchTarget) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,

		`DROP TABLE IF EXISTS docs`,
		`DROP TABLE IF EXISTS users`,

		`CREATE TABLE users (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			email TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE INDEX users_created ON users(created)`,

		`CREATE TABLE docs (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX docs_created ON docs(created)`,
	}

	for _, s := range stmts {
		if err := target.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
