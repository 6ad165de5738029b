// Package apperror classifies failures into the small set of outcomes the API
// reports to clients: bad request, not found, or an unclassified failure.
package apperror

import (
	"errors"
	"net/http"
)

// Kind tags an error with its HTTP-meaningful class
type Kind int

const (
	KindUnclassified Kind = iota
	KindBadRequest
	KindNotFound
)

// Response messages
const (
	MsgBadRequest    = "Bad Request"
	MsgNotFound      = "Not found"
	MsgNotFoundTitle = "Not Found"
	MsgInternal      = "Internal Server Error"
)

// Error is a classified application error
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports malformed input: a non-numeric id, a missing field, a wrong-typed value
func BadRequest() *Error {
	return &Error{Kind: KindBadRequest, Msg: MsgBadRequest}
}

// NotFound reports a well-formed identifier with no matching row.
// The message casing differs between endpoints, so callers pick it.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Unclassified wraps a failure the API does not recover from
func Unclassified(err error) *Error {
	return &Error{Kind: KindUnclassified, Msg: MsgInternal, Err: err}
}

// Classify decides the terminal outcome for an error of unknown origin.
// Storage errors are translated first, then application errors are taken as is,
// and anything left is unclassified.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	err = FromStorage(err)

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unclassified(err)
}

// Status maps a kind to its HTTP status code
func Status(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnclassified:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err classifies as the given kind
func Is(err error, kind Kind) bool {
	return Classify(err).Kind == kind
}
