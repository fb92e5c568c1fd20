package sqliteh

import (
	"errors"

	"github.com/google/uuid"
	"github.com/safelite/safelite/internal/log"
	"github.com/safelite/safelite/internal/notnull"
)

// Tx is a scoped transaction guard. Begin issues a BEGIN on the
// connection; the guard then either commits exactly once through
// Commit, or rolls back when Rollback runs while the guard is still
// active. The intended use is
//
//	tx, err := sqliteh.Begin(conn)
//	if err != nil { ... }
//	defer tx.Rollback()
//	...
//	return tx.Commit()
//
// so that any scope exited without an explicit commit, via early
// return or error, leaves the database in its pre-scope state.
//
// A Tx references the connection, it does not own it. The guard is not
// safe to share between goroutines, and nested guards on one
// connection are unsupported: the engine permits a single active
// transaction per connection, so a second Begin fails.
type Tx struct {
	conn *Conn // nil once committed or rolled back
	id   string
}

// Begin starts a transaction on the connection and returns its guard.
func Begin(conn notnull.Value[Conn]) (*Tx, error) {
	c := conn.Get()
	if err := c.exec("BEGIN TRANSACTION;"); err != nil {
		return nil, err
	}

	id := uuid.NewString()[:8]
	c.logger.DebugNs(log.NsTransaction, "begin", log.KV{"tx": id})

	return &Tx{conn: c, id: id}, nil
}

// ID returns the guard's short identifier, used to correlate log
// records.
func (tx *Tx) ID() string {
	return tx.id
}

// Active reports whether the guard still holds an open transaction.
func (tx *Tx) Active() bool {
	return tx.conn != nil
}

// Commit commits the transaction. The guard releases its connection
// reference first, so the transaction can never be finished twice; a
// second Commit fails and a later Rollback is a no-op.
func (tx *Tx) Commit() error {
	if tx.conn == nil {
		return newError(KindTx, "", errors.New("transaction already finished"))
	}

	conn := tx.conn
	tx.conn = nil
	if err := conn.exec("COMMIT TRANSACTION;"); err != nil {
		return err
	}

	conn.logger.DebugNs(log.NsTransaction, "commit", log.KV{"tx": tx.id})
	return nil
}

// Rollback rolls the transaction back. It is a no-op once the guard
// has committed or already rolled back, which makes it safe to defer
// unconditionally.
func (tx *Tx) Rollback() error {
	if tx.conn == nil {
		return nil
	}

	conn := tx.conn
	tx.conn = nil
	if err := conn.exec("ROLLBACK TRANSACTION;"); err != nil {
		return err
	}

	conn.logger.DebugNs(log.NsTransaction, "rollback", log.KV{"tx": tx.id})
	return nil
}
