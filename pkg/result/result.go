// Package result provides a success/failure value used at validation and
// repository boundaries where errors must travel as data.
package result

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilFailure replaces a nil error passed to Failure so a failed Result
// always carries an error.
var ErrNilFailure = errors.New("result: failure without error")

// Result holds either a success payload or a failure error, never both.
type Result[T any] struct {
	data T
	err  error
	ok   bool
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

// Failure wraps err in a failed Result.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrNilFailure
	}
	return Result[T]{err: err}
}

// From converts a (value, error) pair into a Result.
func From[T any](data T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(data)
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Data returns the success payload, or the zero value on failure.
func (r Result[T]) Data() T {
	if !r.ok {
		var zero T
		return zero
	}
	return r.data
}

// Err returns the failure error, or nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return ErrNilFailure
	}
	return r.err
}

// Unwrap returns the Result as an idiomatic (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data(), r.Err()
}

// GetOrDefault returns the payload on success and fallback otherwise.
func (r Result[T]) GetOrDefault(fallback T) T {
	if r.ok {
		return r.data
	}
	return fallback
}

// GetOrThrow returns the payload, panicking with the failure error.
func (r Result[T]) GetOrThrow() T {
	if !r.ok {
		panic(r.Err())
	}
	return r.data
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("success(%v)", r.data)
	}
	return fmt.Sprintf("failure(%v)", r.Err())
}

// Map transforms the success payload. fn is not called on failure.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Failure[U](r.Err())
	}
	return Success(fn(r.data))
}

// FlatMap chains a dependent operation, short-circuiting on failure.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Failure[U](r.Err())
	}
	return fn(r.data)
}

// Combine turns a list of Results into a Result of a list. The first failure
// in list order wins.
func Combine[T any](results []Result[T]) Result[[]T] {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if !r.ok {
			return Failure[[]T](r.Err())
		}
		out = append(out, r.data)
	}
	return Success(out)
}

// PanicError carries a value recovered from a panicking function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("result: recovered panic: %v", e.Value)
}

// Unwrap exposes the recovered value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// TryCatch runs fn and converts its error, or a panic, into a failed Result.
func TryCatch[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Failure[T](&PanicError{Value: rec})
		}
	}()
	return From(fn())
}

// TryCatchAsync runs fn on its own goroutine and waits for exactly one
// outcome. It performs no retries; when ctx is done before fn returns the
// Result fails with ctx.Err().
func TryCatchAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan Result[T], 1)
	go func() {
		done <- TryCatch(func() (T, error) { return fn(ctx) })
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return Failure[T](ctx.Err())
	}
}
