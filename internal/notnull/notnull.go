// Package notnull provides a value wrapper that guarantees a pointer is
// never nil for the lifetime of the wrapper. It is used to annotate
// function parameters that must not receive a nil handle.
//
// The wrapper models identity only: it exposes the wrapped pointer and
// equality against a raw pointer, nothing else. It does not own the
// pointee.
package notnull

import "errors"

// ErrNil is returned when a wrapper is constructed from a nil pointer.
var ErrNil = errors.New("notnull: nil pointer")

// Value wraps a *T that is guaranteed to be non-nil. The zero Value does
// not satisfy the invariant; always construct one through New or MustNew.
//
// Copies of a Value are always safe and are never re-checked, since the
// source already satisfies the invariant.
type Value[T any] struct {
	ptr *T
}

// New wraps ptr, failing with ErrNil if ptr is nil. This is the only
// point at which the invariant can be violated.
func New[T any](ptr *T) (Value[T], error) {
	if ptr == nil {
		return Value[T]{}, ErrNil
	}
	return Value[T]{ptr: ptr}, nil
}

// MustNew wraps ptr and panics if ptr is nil. Intended for values the
// caller already knows to be non-nil.
func MustNew[T any](ptr *T) Value[T] {
	v, err := New(ptr)
	if err != nil {
		panic(err)
	}
	return v
}

// Get returns the wrapped pointer. It panics if the Value was not built
// through New or MustNew, since a zero Value holds nil.
func (v Value[T]) Get() *T {
	if v.ptr == nil {
		panic("notnull: use of uninitialized Value")
	}
	return v.ptr
}

// Equal reports whether the wrapped pointer is the same as ptr.
func (v Value[T]) Equal(ptr *T) bool {
	return v.ptr == ptr
}
