package api

import (
	"net/http"

	"github.com/forum-news-api/internal/service"
	"github.com/gin-gonic/gin"
)

// TopicHandler handles topic requests
type TopicHandler struct {
	services *service.Services
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(services *service.Services) *TopicHandler {
	return &TopicHandler{services: services}
}

// ListTopics handles GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.services.Topic.ListTopics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
