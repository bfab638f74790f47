// Package rdb is a small convenience wrapper around the embedded SQLite
// engine. It exposes two facades over the same connection:
//
//   - A resource-managed API (DB, Stmt, Tx) where every failure is returned
//     as an error carrying the engine's raw diagnostic text.
//   - A materializing API (DB.Query returning Results) that copies every
//     result row into memory as string-keyed text fields and reports
//     failures through the Results.Error field instead of a returned error.
//
// The two error policies are intentionally different and both are part of
// the public contract.
//
// A DB and everything derived from it is meant for single-threaded,
// synchronous use. Statements and transaction guards borrow their DB and
// must not be used after it is closed; calls made after Close fail fast
// instead of touching a freed engine handle.
package rdb
