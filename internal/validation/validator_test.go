package validation

import (
	"errors"
	"testing"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"valid id", "2", 2, false},
		{"large valid id", "2147483647", 2147483647, false},
		{"word", "pigeon", 0, true},
		{"empty", "", 0, true},
		{"decimal", "1.5", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"trailing garbage", "12abc", 0, true},
		{"overflows int column", "99999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID("article_id", tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				classified := apperror.Classify(err)
				assert.Equal(t, apperror.KindBadRequest, classified.Kind)
				assert.Equal(t, "Bad Request", classified.Msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID_CarriesFieldDetail(t *testing.T) {
	_, err := ParseID("comment_id", "pigeon")

	var vErr ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "comment_id", vErr.Field)
	assert.Equal(t, "pigeon", vErr.Value)
	assert.Contains(t, err.Error(), "comment_id: must be an integer")
}

func TestValidateNewComment(t *testing.T) {
	tests := []struct {
		name      string
		payload   models.NewComment
		wantField string
	}{
		{
			name:    "valid comment",
			payload: models.NewComment{Username: strPtr("rogersop"), Body: strPtr("hi there")},
		},
		{
			name:      "missing body",
			payload:   models.NewComment{Username: strPtr("rogersop")},
			wantField: "body",
		},
		{
			name:      "missing username",
			payload:   models.NewComment{Body: strPtr("hi there")},
			wantField: "username",
		},
		{
			name:      "blank body",
			payload:   models.NewComment{Username: strPtr("rogersop"), Body: strPtr("   ")},
			wantField: "body",
		},
		{
			name:      "empty username",
			payload:   models.NewComment{Username: strPtr(""), Body: strPtr("hi")},
			wantField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, body, err := ValidateNewComment(tt.payload)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, *tt.payload.Username, username)
				assert.Equal(t, *tt.payload.Body, body)
				return
			}

			assert.True(t, apperror.Is(err, apperror.KindBadRequest))
			var vErr ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidateVoteUpdate(t *testing.T) {
	inc, err := ValidateVoteUpdate(models.VoteUpdate{IncVotes: intPtr(-20)})
	require.NoError(t, err)
	assert.Equal(t, -20, inc)

	_, err = ValidateVoteUpdate(models.VoteUpdate{})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}
