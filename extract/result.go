package extract

import "errors"

// ErrBadResultAccess is the value MustValue panics with on an error Result,
// and the error held by a Result built with Err(nil). The Value and Error
// accessors report a Result in the wrong state with a false second result
// instead of panicking, replacing the exception-on-wrong-state behavior of
// the original implementation with an accessor pattern idiomatic to Go.
var ErrBadResultAccess = errors.New("jsonv: bad result access")

// Result holds either a successfully extracted T or the error that
// prevented producing one, per spec.md §9's result type.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok constructs a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err constructs a failed Result. Passing a nil err still produces a
// failed Result (Ok() reports false), since the zero value of Result[T]
// already behaves this way.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = ErrBadResultAccess
	}
	return Result[T]{err: err}
}

// Ok reports whether the Result holds a value.
func (r Result[T]) Ok() bool { return r.ok }

// Value returns the held value and true. If the Result is an error
// Result, it returns the zero value of T and false instead of panicking.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// MustValue returns the held value, or panics if the Result is an error
// Result. Only meant for call sites that already checked Ok.
func (r Result[T]) MustValue() T {
	if !r.ok {
		panic(ErrBadResultAccess)
	}
	return r.value
}

// Error returns the held error and true. If the Result is a success
// Result, it returns (nil, false) instead of panicking.
func (r Result[T]) Error() (error, bool) {
	if r.ok {
		return nil, false
	}
	return r.err, true
}
