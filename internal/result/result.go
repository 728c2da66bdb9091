// Package result provides Result, the return type of service operations that
// can fail for an anticipated business reason. Programming errors still panic.
package result

import (
	"reflect"

	"github.com/phrazzld/roster-api/internal/failure"
)

// Result holds either a success value or a failure reason, never both.
// The zero Result is not valid; build one with Success or Failure.
type Result[T any] struct {
	value  T
	reason failure.Reason
	ok     bool
}

// Success wraps value. It panics if value is a nil pointer, map, slice,
// channel, function or interface.
func Success[T any](value T) Result[T] {
	if isNil(value) {
		panic("result: Success called with nil value")
	}
	return Result[T]{value: value, ok: true}
}

// Failure wraps reason. It panics if reason is nil.
func Failure[T any](reason failure.Reason) Result[T] {
	if reason == nil {
		panic("result: Failure called with nil reason")
	}
	return Result[T]{reason: reason}
}

// Fold applies onSuccess or onFailure, exactly one of them, and returns its result.
func Fold[T, R any](r Result[T], onSuccess func(T) R, onFailure func(failure.Reason) R) R {
	r.check()
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.reason)
}

// Map transforms the success value and passes a failure through unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	r.check()
	if !r.ok {
		return Result[U]{reason: r.reason}
	}
	return Success(f(r.value))
}

// FlatMap chains an operation that itself returns a Result.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	r.check()
	if !r.ok {
		return Result[U]{reason: r.reason}
	}
	return f(r.value)
}

// Match calls onSuccess or onFailure for their side effects.
func (r Result[T]) Match(onSuccess func(T), onFailure func(failure.Reason)) {
	r.check()
	if r.ok {
		onSuccess(r.value)
		return
	}
	onFailure(r.reason)
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether r holds a failure reason.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// GetOrDefault returns the success value or def.
func (r Result[T]) GetOrDefault(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// GetOrZero returns the success value or the zero value of T.
func (r Result[T]) GetOrZero() T {
	var zero T
	return r.GetOrDefault(zero)
}

// Reason returns the failure reason, or nil for a success.
func (r Result[T]) Reason() failure.Reason {
	return r.reason
}

func (r Result[T]) check() {
	if !r.ok && r.reason == nil {
		panic("result: use of zero Result")
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
