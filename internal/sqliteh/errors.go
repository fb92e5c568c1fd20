package sqliteh

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/orsinium-labs/enum"
)

// Kind classifies an engine failure so callers can decide to retry,
// roll back, or abort instead of the process terminating.
type Kind enum.Member[string]

var (
	KindOpen       = Kind{Value: "open"}
	KindClose      = Kind{Value: "close"}
	KindPrepare    = Kind{Value: "prepare"}
	KindExec       = Kind{Value: "exec"}
	KindBind       = Kind{Value: "bind"}
	KindStep       = Kind{Value: "step"}
	KindBusy       = Kind{Value: "busy"}
	KindConstraint = Kind{Value: "constraint"}
	KindMisuse     = Kind{Value: "misuse"}
	KindFinalize   = Kind{Value: "finalize"}
	KindTx         = Kind{Value: "transaction"}

	Kinds = enum.New(
		KindOpen, KindClose, KindPrepare, KindExec, KindBind, KindStep,
		KindBusy, KindConstraint, KindMisuse, KindFinalize, KindTx,
	)
)

// Error is the failure type returned by every operation in this
// package. It carries the failing SQL text (or the database name for
// open/close failures) together with the engine's own error, so the
// caller never loses the diagnostic context.
type Error struct {
	Kind Kind
	// SQL is the statement text the engine rejected. For open and
	// close failures it holds the database name instead.
	SQL string
	Err error
}

func (e *Error) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("sqliteh: %s failed: %v", e.Kind.Value, e.Err)
	}
	return fmt.Sprintf("sqliteh: %s failed: %q: %v", e.Kind.Value, e.SQL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient (the engine was
// busy or a table was locked) and the operation may be attempted again.
func (e *Error) Retryable() bool {
	return e.Kind == KindBusy
}

func newError(kind Kind, sql string, err error) *Error {
	return &Error{Kind: kind, SQL: sql, Err: err}
}

// classify maps an engine error to its Kind, refining the fallback kind
// with the engine's result code when one is present. Busy and locked
// are surfaced as retryable, misuse as a programming error, and
// constraint violations get their own kind; nothing is silently
// swallowed.
func classify(fallback Kind, sql string, err error) *Error {
	var engineErr sqlite3.Error
	if errors.As(err, &engineErr) {
		switch engineErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return newError(KindBusy, sql, err)
		case sqlite3.ErrMisuse:
			return newError(KindMisuse, sql, err)
		case sqlite3.ErrConstraint:
			return newError(KindConstraint, sql, err)
		}
	}
	return newError(fallback, sql, err)
}
