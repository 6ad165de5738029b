package api

import (
	"net/http"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/service"
	"github.com/forum-news-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article requests
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var filter models.ArticleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(apperror.BadRequest())
		return
	}

	articles, err := h.services.Article.ListArticles(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// UpdateVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateVotes(c *gin.Context) {
	id, err := validation.ParseID("article_id", c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var update models.VoteUpdate
	if err := bindJSON(c, &update); err != nil {
		h.log.Debug().Err(err).Int("article_id", id).Msg("Rejected vote payload")
		_ = c.Error(err)
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), id, update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"article": article})
}
