package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/models"
)

// ValidationError describes why a single field was rejected
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid wraps a field error as a bad request so the detail reaches the logs
// while the client only sees "Bad Request"
func invalid(field, message string, value interface{}) error {
	return &apperror.Error{
		Kind: apperror.KindBadRequest,
		Msg:  apperror.MsgBadRequest,
		Err:  ValidationError{Field: field, Message: message, Value: value},
	}
}

// ParseID validates a path identifier. Ids are positive integers that fit the
// database's INT column; anything else is a bad request, checked before any query runs.
func ParseID(field, raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, invalid(field, "must be an integer", raw)
	}
	if id <= 0 {
		return 0, invalid(field, "must be positive", raw)
	}
	return int(id), nil
}

// ValidateNewComment checks that a comment payload carries both a username and a body
func ValidateNewComment(payload models.NewComment) (username, body string, err error) {
	if payload.Username == nil || strings.TrimSpace(*payload.Username) == "" {
		return "", "", invalid("username", "username is required", nil)
	}
	if payload.Body == nil || strings.TrimSpace(*payload.Body) == "" {
		return "", "", invalid("body", "body is required", nil)
	}
	return *payload.Username, *payload.Body, nil
}

// ValidateVoteUpdate checks that a vote payload carries inc_votes
func ValidateVoteUpdate(payload models.VoteUpdate) (int, error) {
	if payload.IncVotes == nil {
		return 0, invalid("inc_votes", "inc_votes is required", nil)
	}
	return *payload.IncVotes, nil
}
