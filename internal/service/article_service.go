package service

import (
	"context"

	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/repository"
	"github.com/forum-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// ListArticles returns article summaries, optionally restricted to one topic.
// A topic with no articles yields an empty list, not an error.
func (s *articleService) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleSummary, error) {
	return s.articles.List(ctx, filter)
}

// GetArticle returns one article with its comment count
func (s *articleService) GetArticle(ctx context.Context, id int) (*models.ArticleWithCount, error) {
	return s.articles.GetByID(ctx, id)
}

// UpdateVotes applies a relative vote change and returns the updated article
func (s *articleService) UpdateVotes(ctx context.Context, id int, update models.VoteUpdate) (*models.Article, error) {
	inc, err := validation.ValidateVoteUpdate(update)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.IncrementVotes(ctx, id, inc)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("article_id", id).
		Int("inc_votes", inc).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
