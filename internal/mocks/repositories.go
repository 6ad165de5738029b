package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/forum-news-api/internal/apperror"
	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/repository"
	"github.com/lib/pq"
)

// Verify interface compliance
var (
	_ repository.TopicRepository   = (*MockTopicRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	Topics    []models.Topic
	ListError error
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Topic, len(m.Topics))
	copy(out, m.Topics)
	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu          sync.RWMutex
	Users       map[string]models.User
	ListError   error
	ExistsError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]models.User)}
}

func (m *MockUserRepository) Add(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.Username] = user
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.Users[username]
	return exists, nil
}

// MockCommentRepository is a mock implementation of CommentRepository.
// Inserts check the author against Users the way the foreign key does.
type MockCommentRepository struct {
	mu          sync.RWMutex
	Comments    map[int]*models.Comment
	Users       *MockUserRepository
	nextID      int
	CreateError error
	ListError   error
	Now         func() time.Time
}

func NewMockCommentRepository(users *MockUserRepository) *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int]*models.Comment),
		Users:    users,
		nextID:   1,
		Now:      time.Now,
	}
}

// Add stores a comment as is, keeping the id sequence ahead of it
func (m *MockCommentRepository) Add(comment models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := comment
	m.Comments[c.CommentID] = &c
	if c.CommentID >= m.nextID {
		m.nextID = c.CommentID + 1
	}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].CommentID > comments[j].CommentID
	})
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if m.CreateError != nil {
		return nil, apperror.FromStorage(m.CreateError)
	}
	if m.Users != nil {
		if ok, _ := m.Users.Exists(ctx, comment.Author); !ok {
			return nil, apperror.FromStorage(&pq.Error{Code: "23503", Message: "comments_author_fkey"})
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := &models.Comment{
		CommentID: m.nextID,
		ArticleID: comment.ArticleID,
		Author:    comment.Author,
		Body:      comment.Body,
		Votes:     0,
		CreatedAt: m.Now(),
	}
	m.Comments[inserted.CommentID] = inserted
	m.nextID++

	out := *inserted
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[id]; !ok {
		return apperror.NotFound(apperror.MsgNotFoundTitle)
	}
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) countFor(articleID int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// Comment counts are derived from Comments on every read.
type MockArticleRepository struct {
	mu          sync.RWMutex
	Articles    map[int]*models.Article
	Comments    *MockCommentRepository
	ListError   error
	ExistsError error
}

func NewMockArticleRepository(comments *MockCommentRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int]*models.Article),
		Comments: comments,
	}
}

func (m *MockArticleRepository) Add(article models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := article
	m.Articles[a.ArticleID] = &a
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleSummary, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	articles := make([]models.ArticleSummary, 0)
	for _, a := range m.Articles {
		if filter.Topic != "" && a.Topic != filter.Topic {
			continue
		}
		articles = append(articles, models.ArticleSummary{
			ArticleID:     a.ArticleID,
			Title:         a.Title,
			Topic:         a.Topic,
			Author:        a.Author,
			CreatedAt:     a.CreatedAt,
			Votes:         a.Votes,
			ArticleImgURL: a.ArticleImgURL,
			CommentCount:  m.commentCount(a.ArticleID),
		})
	}
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return articles[i].ArticleID > articles[j].ArticleID
	})
	return articles, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.ArticleWithCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, apperror.NotFound(apperror.MsgNotFound)
	}
	return &models.ArticleWithCount{Article: *a, CommentCount: m.commentCount(id)}, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, apperror.NotFound(apperror.MsgNotFoundTitle)
	}
	a.Votes += delta
	out := *a
	return &out, nil
}

func (m *MockArticleRepository) commentCount(articleID int) int {
	if m.Comments == nil {
		return 0
	}
	return m.Comments.countFor(articleID)
}

// Store bundles the mock repositories so they share one dataset
type Store struct {
	Topics   *MockTopicRepository
	Users    *MockUserRepository
	Articles *MockArticleRepository
	Comments *MockCommentRepository
}

// NewStore creates an empty store
func NewStore() *Store {
	users := NewMockUserRepository()
	comments := NewMockCommentRepository(users)
	return &Store{
		Topics:   &MockTopicRepository{},
		Users:    users,
		Articles: NewMockArticleRepository(comments),
		Comments: comments,
	}
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   s.Topics,
		User:    s.Users,
		Article: s.Articles,
		Comment: s.Comments,
	}
}
