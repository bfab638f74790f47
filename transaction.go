package rdb

// Tx is a transaction guard. Exactly one of Commit or Rollback takes effect
// per guard; after either, both become idempotent no-ops.
//
// The intended usage is to defer a rollback immediately after Begin:
//
//	tx, err := db.Begin()
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback()
//	// ... writes ...
//	return tx.Commit()
//
// Any control-flow exit that does not reach Commit rolls the transaction
// back, so an abandoned transaction never silently commits.
type Tx struct {
	db   *DB
	done bool
}

// Begin starts a transaction immediately, issuing BEGIN before returning.
// Nested transactions are not supported: if a transaction is already open on
// this connection, Begin returns the engine's *QueryError.
func (db *DB) Begin() (*Tx, error) {
	if err := db.Execute("BEGIN"); err != nil {
		return nil, err
	}
	return &Tx{db: db}, nil
}

// Commit makes the transaction's writes permanent. On a guard that already
// committed or rolled back it is a no-op. If COMMIT itself fails the guard
// stays active, so a deferred Rollback still takes effect.
func (tx *Tx) Commit() error {
	if tx.done {
		return nil
	}
	if err := tx.db.Execute("COMMIT"); err != nil {
		return err
	}
	tx.done = true
	return nil
}

// Rollback discards the transaction's writes. On a guard that already
// committed or rolled back it is a no-op.
func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	if err := tx.db.Execute("ROLLBACK"); err != nil {
		return err
	}
	tx.done = true
	return nil
}
