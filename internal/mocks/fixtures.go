package mocks

import (
	"fmt"
	"time"

	"github.com/forum-news-api/internal/models"
)

// NewSeededStore returns a store holding a small forum dataset:
// three topics (paper has no articles), four users, five articles and
// thirteen comments. Article 1 has eleven comments, article 2 has none.
func NewSeededStore() *Store {
	s := NewStore()

	s.Topics.Topics = []models.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
		{Slug: "paper", Description: "what books are made of"},
	}

	for _, u := range []models.User{
		{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://example.com/avatars/jonny.jpg"},
		{Username: "icellusedkars", Name: "sam", AvatarURL: "https://example.com/avatars/sam.jpg"},
		{Username: "rogersop", Name: "paul", AvatarURL: "https://example.com/avatars/paul.jpg"},
		{Username: "lurker", Name: "do_nothing", AvatarURL: "https://example.com/avatars/lurker.jpg"},
	} {
		s.Users.Add(u)
	}

	articles := []models.Article{
		{
			ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge",
			Body: "I find this existence challenging", CreatedAt: ts(1594329060000), Votes: 100,
		},
		{
			ArticleID: 2, Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars",
			Body: "Call me Mitchell.", CreatedAt: ts(1602828180000),
		},
		{
			ArticleID: 3, Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars",
			Body: "some gifs", CreatedAt: ts(1604394720000),
		},
		{
			ArticleID: 4, Title: "Student SUES Mitch!", Topic: "mitch", Author: "rogersop",
			Body: "We all love Mitch and his wonderful, unique typing style.", CreatedAt: ts(1588731240000),
		},
		{
			ArticleID: 5, Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop",
			Body: "Bastet walks amongst us, and the cats are taking arms!", CreatedAt: ts(1596464040000),
		},
	}
	for _, a := range articles {
		a.ArticleImgURL = fmt.Sprintf("https://images.example.com/articles/%d.jpg", a.ArticleID)
		s.Articles.Add(a)
	}

	commentID := 1
	for i := 0; i < 11; i++ {
		s.Comments.Add(models.Comment{
			CommentID: commentID,
			ArticleID: 1,
			Author:    "butter_bridge",
			Body:      fmt.Sprintf("comment %d on article 1", i+1),
			Votes:     i,
			CreatedAt: ts(1586179020000 + int64(i)*86_400_000),
		})
		commentID++
	}
	for _, articleID := range []int{3, 3} {
		s.Comments.Add(models.Comment{
			CommentID: commentID,
			ArticleID: articleID,
			Author:    "icellusedkars",
			Body:      "Ambidextrous marsupial",
			CreatedAt: ts(1600560600000),
		})
		commentID++
	}

	return s
}

func ts(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}
