package api

import (
	"net/http"

	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/service"
	"github.com/forum-news-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	comments, err := h.services.Comment.ListComments(c.Request.Context(), articleID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var payload models.NewComment
	if err := bindJSON(c, &payload); err != nil {
		h.log.Debug().Err(err).Int("article_id", articleID).Msg("Rejected comment payload")
		_ = c.Error(err)
		return
	}

	comment, err := h.services.Comment.CreateComment(c.Request.Context(), articleID, payload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := validation.ParseID("comment_id", c.Param("comment_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
