// Package sqlitec provides a lightweight wrapper for the SQLite C interface.
// It allows direct interaction with SQLite's low-level API through the pure
// Go transpilation in modernc.org/sqlite/lib, so no cgo is required.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlitec
