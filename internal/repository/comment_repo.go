package repository

import (
	"context"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/database"
	"github.com/forum-news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns an article's comments, newest first.
// Equal timestamps fall back to comment_id descending.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	query := `
		SELECT comment_id, article_id, author, body, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.CommentID, &comment.ArticleID, &comment.Author, &comment.Body,
			&comment.Votes, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Create inserts a new comment. The database assigns comment_id, votes and created_at.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, article_id, author, body, votes, created_at
	`

	var inserted models.Comment
	err := r.db.QueryRowContext(ctx, query, comment.ArticleID, comment.Author, comment.Body).Scan(
		&inserted.CommentID, &inserted.ArticleID, &inserted.Author, &inserted.Body,
		&inserted.Votes, &inserted.CreatedAt,
	)
	if err != nil {
		return nil, apperror.FromStorage(err)
	}

	return &inserted, nil
}

// Delete permanently removes a comment
func (r *commentRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return apperror.FromStorage(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound(apperror.MsgNotFoundTitle)
	}
	return nil
}
