package models

import (
	"time"
)

// Article represents an article in the system
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Author        string    `json:"author" db:"author"`
	Body          string    `json:"body" db:"body"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
}

// ArticleWithCount is a single article read, carrying its derived comment count
type ArticleWithCount struct {
	Article
	CommentCount int `json:"comment_count" db:"comment_count"`
}

// ArticleSummary is an article listing row: no body, plus the comment count
type ArticleSummary struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Author        string    `json:"author" db:"author"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// ArticleFilter narrows the article listing. An empty Topic means no filter.
type ArticleFilter struct {
	Topic string `form:"topic"`
}

// VoteUpdate is the PATCH /api/articles/:article_id payload
type VoteUpdate struct {
	IncVotes *int `json:"inc_votes"`
}
