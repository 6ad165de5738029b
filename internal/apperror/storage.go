package apperror

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the API recognizes
const (
	codeNotNullViolation    pq.ErrorCode = "23502"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeInvalidTextRepr     pq.ErrorCode = "22P02"
)

// FromStorage translates a driver error into a classified error by its SQLSTATE.
// This is the only place that inspects engine-specific codes; errors it does not
// recognize are returned unchanged.
func FromStorage(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeNotNullViolation, codeInvalidTextRepr:
		return &Error{Kind: KindBadRequest, Msg: MsgBadRequest, Err: err}
	case codeForeignKeyViolation:
		return &Error{Kind: KindNotFound, Msg: MsgNotFoundTitle, Err: err}
	default:
		return err
	}
}
