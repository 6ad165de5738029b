package service

import (
	"context"
	"fmt"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/repository"
	"github.com/forum-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

func newCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		users:    users,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListComments returns an article's comments, newest first.
// The article must exist; an existing article with no comments yields an empty list.
func (s *commentService) ListComments(ctx context.Context, articleID int) ([]models.Comment, error) {
	if err := s.requireArticle(ctx, articleID, apperror.MsgNotFound); err != nil {
		return nil, err
	}
	return s.comments.ListByArticle(ctx, articleID)
}

// CreateComment validates in order: the article exists, the payload is complete,
// the author exists. Only then is the row inserted.
func (s *commentService) CreateComment(ctx context.Context, articleID int, payload models.NewComment) (*models.Comment, error) {
	if err := s.requireArticle(ctx, articleID, apperror.MsgNotFoundTitle); err != nil {
		return nil, err
	}

	username, body, err := validation.ValidateNewComment(payload)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check user %q: %w", username, err)
	}
	if !exists {
		return nil, apperror.NotFound(apperror.MsgNotFoundTitle)
	}

	comment, err := s.comments.Create(ctx, &models.Comment{
		ArticleID: articleID,
		Author:    username,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("comment_id", comment.CommentID).
		Int("article_id", articleID).
		Str("author", username).
		Msg("Comment created")

	return comment, nil
}

// DeleteComment removes a comment permanently
func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}

func (s *commentService) requireArticle(ctx context.Context, articleID int, notFoundMsg string) error {
	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to check article %d: %w", articleID, err)
	}
	if !exists {
		return apperror.NotFound(notFoundMsg)
	}
	return nil
}
