// Package sqliteh provides owning handles over a single SQLite
// connection and its prepared statements, accessed through the
// driver-level API of mattn/go-sqlite3 without a connection pool in
// between.
//
// The package guarantees scoped resource discipline: a Conn closes its
// connection exactly once, a Stmt finalizes exactly once and is always
// reset (bindings cleared, cursor rewound) when a run returns, and a Tx
// rolls back unless explicitly committed. Handles perform no internal
// locking; a Conn and its Stmts must be used from a single goroutine.
//
//   - https://www.sqlite.org/cintro.html
//   - https://pkg.go.dev/github.com/mattn/go-sqlite3
package sqliteh
