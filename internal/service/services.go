package service

import (
	"context"

	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	ListArticles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleSummary, error)
	GetArticle(ctx context.Context, id int) (*models.ArticleWithCount, error)
	UpdateVotes(ctx context.Context, id int, update models.VoteUpdate) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context, articleID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, articleID int, payload models.NewComment) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	User    UserService
	Article ArticleService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Topic:   newTopicService(repos.Topic),
		User:    newUserService(repos.User),
		Article: newArticleService(repos.Article, log),
		Comment: newCommentService(repos.Comment, repos.Article, repos.User, log),
	}
}
