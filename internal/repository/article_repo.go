package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/database"
	"github.com/forum-news-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = "article_id, title, topic, author, body, created_at, votes, article_img_url"

// List returns article summaries with their comment counts, newest first.
// Equal timestamps fall back to article_id descending.
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleSummary, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
		SELECT a.article_id, a.title, a.topic, a.author, a.created_at, a.votes, a.article_img_url,
			COUNT(c.comment_id)::INT AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id`)
	if filter.Topic != "" {
		args = append(args, filter.Topic)
		query.WriteString(`
		WHERE a.topic = $1`)
	}
	query.WriteString(`
		GROUP BY a.article_id
		ORDER BY a.created_at DESC, a.article_id DESC`)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]models.ArticleSummary, 0)
	for rows.Next() {
		var a models.ArticleSummary
		err := rows.Scan(
			&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.CreatedAt, &a.Votes, &a.ArticleImgURL,
			&a.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.ArticleWithCount, error) {
	query := `
		SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.article_img_url,
			COUNT(c.comment_id)::INT AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id
	`

	var article models.ArticleWithCount
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ArticleID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL, &article.CommentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(apperror.MsgNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	return exists, err
}

// IncrementVotes adds delta to the article's votes in a single statement,
// so concurrent increments on the same row are serialized by the database.
func (r *articleRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	query := `
		UPDATE articles SET votes = votes + $1
		WHERE article_id = $2
		RETURNING ` + articleColumns

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(
		&article.ArticleID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(apperror.MsgNotFoundTitle)
	}
	if err != nil {
		return nil, apperror.FromStorage(err)
	}

	return &article, nil
}
