package api

import (
	"net/http"

	"github.com/forum-news-api/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user requests
type UserHandler struct {
	services *service.Services
}

// NewUserHandler creates a new user handler
func NewUserHandler(services *service.Services) *UserHandler {
	return &UserHandler{services: services}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.services.User.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
