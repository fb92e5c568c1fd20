package sqliteh

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-sqlite3"
	"github.com/safelite/safelite/internal/notnull"
)

type driverValue = driver.Value

// Stmt owns exactly one compiled statement tied to a specific
// connection. It is created by Prepare and finalized exactly once by
// Finalize, which must happen before the owning connection closes.
//
// Parameter bindings are 1-based and ephemeral: a later bind to the
// same index overwrites the earlier one, and every run clears all
// bindings on exit. Parameters left unbound run as SQL NULL.
type Stmt struct {
	conn     *Conn
	raw      *sqlite3.SQLiteStmt
	sql      string
	numInput int
	params   []driverValue

	// Row state for the callback, valid only while Run is positioned
	// on a row.
	cols []string
	decl []string
	cur  []driverValue
}

// RowFunc is invoked by Run once per result row with a non-null
// reference to the statement positioned at that row. Returning false
// stops the iteration early; returning an error aborts it and the
// error propagates to the Run caller.
type RowFunc func(stmt notnull.Value[Stmt]) (bool, error)

// SQL returns the text the statement was compiled from.
func (stmt *Stmt) SQL() string {
	return stmt.sql
}

// NumInput returns the number of parameter slots in the statement.
func (stmt *Stmt) NumInput() int {
	return stmt.numInput
}

// Handle returns a non-null reference to the statement. It fails once
// the statement has been finalized.
func (stmt *Stmt) Handle() (notnull.Value[Stmt], error) {
	if stmt == nil || stmt.raw == nil {
		return notnull.Value[Stmt]{}, newError(KindMisuse, "", errors.New("statement is finalized"))
	}
	return notnull.New(stmt)
}

func (stmt *Stmt) bind(index int, value driverValue) error {
	if stmt.raw == nil {
		return newError(KindBind, stmt.sql, errors.New("statement is finalized"))
	}
	if index < 1 || index > stmt.numInput {
		return newError(KindBind, stmt.sql, fmt.Errorf(
			"parameter index %d out of range [1, %d]", index, stmt.numInput,
		))
	}
	stmt.params[index-1] = value
	return nil
}

// BindInt64 binds a 64-bit integer at the given 1-based index.
func (stmt *Stmt) BindInt64(index int, value int64) error {
	return stmt.bind(index, value)
}

// BindFloat64 binds a double-precision float at the given 1-based index.
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	return stmt.bind(index, value)
}

// BindText binds a string at the given 1-based index. The value is
// copied; the source may be mutated or discarded after the call.
func (stmt *Stmt) BindText(index int, value string) error {
	return stmt.bind(index, value)
}

// BindBlob binds a byte slice at the given 1-based index. The bytes
// are copied; the source buffer may be mutated or discarded after the
// call.
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	return stmt.bind(index, buf)
}

// BindNull binds SQL NULL at the given 1-based index.
func (stmt *Stmt) BindNull(index int) error {
	return stmt.bind(index, nil)
}

// clearBindings resets every parameter slot to NULL.
func (stmt *Stmt) clearBindings() {
	for i := range stmt.params {
		stmt.params[i] = nil
	}
}

// Run drives the statement to completion, invoking fn once per result
// row. fn may be nil for statements with no interesting rows, such as
// inserts. Iteration stops when the engine reports completion, when fn
// returns false, or when a step fails; step failures are classified,
// never ignored.
//
// On every exit path, including a callback error, the statement is
// reset: the cursor is rewound and all parameter bindings are cleared,
// so the statement can be bound and run again.
func (stmt *Stmt) Run(fn RowFunc) error {
	if stmt.raw == nil {
		return newError(KindMisuse, stmt.sql, errors.New("statement is finalized"))
	}

	args := make([]driverValue, stmt.numInput)
	copy(args, stmt.params)
	defer stmt.clearBindings()

	rows, err := stmt.raw.Query(args)
	if err != nil {
		return classify(KindStep, stmt.sql, err)
	}
	// Closing the rows resets the statement cursor, on every exit path.
	defer func() {
		stmt.cur = nil
		_ = rows.Close()
	}()

	stmt.cols = rows.Columns()
	if sqliteRows, ok := rows.(*sqlite3.SQLiteRows); ok {
		stmt.decl = sqliteRows.DeclTypes()
	}

	handle, err := notnull.New(stmt)
	if err != nil {
		return newError(KindMisuse, stmt.sql, err)
	}

	dest := make([]driverValue, len(stmt.cols))
	for {
		err := rows.Next(dest)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return classify(KindStep, stmt.sql, err)
		}

		if fn == nil {
			continue
		}

		stmt.cur = dest
		more, err := fn(handle)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Finalize frees the compiled statement. It is safe to call more than
// once; only the first call releases the resource.
func (stmt *Stmt) Finalize() error {
	if stmt.raw == nil {
		return nil
	}

	if err := stmt.raw.Close(); err != nil {
		return classify(KindFinalize, stmt.sql, err)
	}
	stmt.raw = nil
	stmt.cur = nil

	return nil
}
