package tmv1

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client construction failures.
var (
	ErrNoToken   = errors.New("tmv1: no token configured")
	ErrNoBaseURL = errors.New("tmv1: no base URL configured")
	ErrNoAppName = errors.New("tmv1: no application name configured")
)

// statusCarrier is implemented by errors that carry an HTTP status.
type statusCarrier interface {
	HTTPStatus() int
}

// codeCarrier is implemented by errors that name their own error code.
type codeCarrier interface {
	errorCode() string
}

// TransportError indicates a network failure, a timeout or a cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tmv1: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) errorCode() string { return "TransportError" }

// ValidationError indicates a payload that did not match the expected shape,
// either a caller input or a decoded response.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmv1: validation error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("tmv1: validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) errorCode() string { return "ValidationError" }

// ServerHTMLError indicates an unexpected HTML error page.
type ServerHTMLError struct {
	StatusCode int
	// Text is the visible text of the page.
	Text string
}

func (e *ServerHTMLError) Error() string {
	return fmt.Sprintf("tmv1: html error response %d: %s", e.StatusCode, e.Text)
}

// HTTPStatus returns the response status code.
func (e *ServerHTMLError) HTTPStatus() int { return e.StatusCode }

func (e *ServerHTMLError) errorCode() string { return "ServerHTMLError" }

// ServerJSONError is a single structured error returned by the API.
type ServerJSONError struct {
	Detail ErrorDetail
}

func (e *ServerJSONError) Error() string {
	return fmt.Sprintf("tmv1: error response %d: code=%s message=%s", e.Detail.Status, e.Detail.Code, e.Detail.Message)
}

// HTTPStatus returns the response status code.
func (e *ServerJSONError) HTTPStatus() int { return e.Detail.Status }

func (e *ServerJSONError) errorCode() string { return "ServerJSONError" }

// ServerMultiJSONError holds one error detail per item of a multi-status
// response in which at least one item failed. Successful items are kept so
// that Details lines up with the request items.
type ServerMultiJSONError struct {
	Details []ErrorDetail
}

func (e *ServerMultiJSONError) Error() string {
	failed := 0
	for _, d := range e.Details {
		if !isHTTPSuccess(d.Status) {
			failed++
		}
	}
	return fmt.Sprintf("tmv1: multi-status response: %d of %d item(s) failed", failed, len(e.Details))
}

// HTTPStatus returns 207, the status of the enclosing response.
func (e *ServerMultiJSONError) HTTPStatus() int { return http.StatusMultiStatus }

func (e *ServerMultiJSONError) errorCode() string { return "ServerMultiJSONError" }

// ServerTextError indicates a non-JSON error response.
type ServerTextError struct {
	StatusCode int
	Body       string
}

func (e *ServerTextError) Error() string {
	return fmt.Sprintf("tmv1: error response %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code.
func (e *ServerTextError) HTTPStatus() int { return e.StatusCode }

func (e *ServerTextError) errorCode() string { return "ServerTextError" }

// ParseModelError indicates a response that matched none of the decoding
// rules for the expected model.
type ParseModelError struct {
	Model       string
	StatusCode  int
	ContentType string
	Body        string
}

func (e *ParseModelError) Error() string {
	return fmt.Sprintf("tmv1: could not parse response: conditions unmet [model=%s, status=%d, content-type=%q, body=%q]",
		e.Model, e.StatusCode, e.ContentType, e.Body)
}

// HTTPStatus always returns 500: the server answered, the client could not
// make sense of it.
func (e *ParseModelError) HTTPStatus() int { return http.StatusInternalServerError }

func (e *ParseModelError) errorCode() string { return "ParseModelError" }

// RuntimeError indicates an unexpected fault inside the client, including a
// recovered panic.
type RuntimeError struct {
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmv1: runtime error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("tmv1: runtime error: %s", e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func (e *RuntimeError) errorCode() string { return "RuntimeError" }

// httpStatus returns the HTTP status carried by err, or 500.
func httpStatus(err error) int {
	var sc statusCarrier
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// errorCodeOf returns the taxonomy name of err.
func errorCodeOf(err error) string {
	var cc codeCarrier
	if errors.As(err, &cc) {
		return cc.errorCode()
	}
	return "RuntimeError"
}

// errorDetail converts err into a single error detail.
func errorDetail(err error) ErrorDetail {
	var jsonErr *ServerJSONError
	if errors.As(err, &jsonErr) {
		return jsonErr.Detail
	}
	return ErrorDetail{
		Status:  httpStatus(err),
		Code:    errorCodeOf(err),
		Message: err.Error(),
	}
}

// errorDetails converts err into per-item error details.
func errorDetails(err error) []ErrorDetail {
	var multiErr *ServerMultiJSONError
	if errors.As(err, &multiErr) {
		return append([]ErrorDetail(nil), multiErr.Details...)
	}
	return []ErrorDetail{errorDetail(err)}
}

func isHTTPSuccess(status int) bool {
	return status >= 200 && status < 399
}
