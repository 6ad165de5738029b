package api

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/forum-news-api/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// errorMiddleware is the terminal stage of the chain: handlers record failures
// with c.Error and this stage turns the last one into exactly one response.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		classified := apperror.Classify(err)
		status := apperror.Status(classified.Kind)

		if classified.Kind == apperror.KindUnclassified {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("path", c.Request.URL.Path).
				Msg("Unhandled error")
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Msg: classified.Msg})
	}
}

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed
// so that missing fields are reported in the service's validation order;
// a malformed or wrong-typed body is a bad request.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &apperror.Error{Kind: apperror.KindBadRequest, Msg: apperror.MsgBadRequest, Err: err}
}
