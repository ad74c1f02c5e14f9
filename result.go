package tmv1

import (
	"fmt"
	"log/slog"
	"time"
)

// ResultCode tells whether an operation succeeded.
type ResultCode string

const (
	ResultSuccess ResultCode = "SUCCESS"
	ResultError   ResultCode = "ERROR"
)

// ErrorDetail is the normalized description of a failed operation or of one
// item of a batch operation.
type ErrorDetail struct {
	Status  int               `json:"status"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Number  int               `json:"number,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
	TaskID  string            `json:"taskId,omitempty"`
}

// Result is the outcome of a single operation. Exactly one of Response and
// Error is set, as indicated by ResultCode.
type Result[T any] struct {
	ResultCode ResultCode
	Response   T
	Error      *ErrorDetail

	err error
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.ResultCode == ResultSuccess }

// Err returns the underlying error, suitable for errors.As, or nil.
func (r Result[T]) Err() error { return r.err }

// Value returns the response and the underlying error.
func (r Result[T]) Value() (T, error) { return r.Response, r.err }

// MultiResult is the outcome of a batch operation. On failure Errors holds
// one entry per request item when the server reported per-item status, or a
// single entry for a failure of the whole call.
type MultiResult[T any] struct {
	ResultCode ResultCode
	Response   T
	Errors     []ErrorDetail

	err error
}

// OK reports whether the operation succeeded.
func (r MultiResult[T]) OK() bool { return r.ResultCode == ResultSuccess }

// Err returns the underlying error, suitable for errors.As, or nil.
func (r MultiResult[T]) Err() error { return r.err }

// Value returns the response and the underlying error.
func (r MultiResult[T]) Value() (T, error) { return r.Response, r.err }

// newResult runs fn and wraps its outcome. No error or panic escapes.
func newResult[T any](logger *slog.Logger, op string, fn func() (T, error)) Result[T] {
	start := time.Now()
	resp, err := guard(fn)
	if err != nil {
		logger.Error("operation failed", "operation", op, "error", err)
		detail := errorDetail(err)
		return Result[T]{ResultCode: ResultError, Error: &detail, err: err}
	}
	logger.Debug("operation finished", "operation", op, "elapsed", time.Since(start))
	return Result[T]{ResultCode: ResultSuccess, Response: resp}
}

// newMultiResult is newResult for batch operations.
func newMultiResult[T any](logger *slog.Logger, op string, fn func() (T, error)) MultiResult[T] {
	start := time.Now()
	resp, err := guard(fn)
	if err != nil {
		logger.Error("operation failed", "operation", op, "error", err)
		return MultiResult[T]{ResultCode: ResultError, Errors: errorDetails(err), err: err}
	}
	logger.Debug("operation finished", "operation", op, "elapsed", time.Since(start))
	return MultiResult[T]{ResultCode: ResultSuccess, Response: resp}
}

func guard[T any](fn func() (T, error)) (resp T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			resp = zero
			if e, ok := r.(error); ok {
				err = &RuntimeError{Message: "recovered panic", Err: e}
				return
			}
			err = &RuntimeError{Message: fmt.Sprintf("recovered panic: %v", r)}
		}
	}()
	return fn()
}
