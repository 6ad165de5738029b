package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forum-news-api/internal/api"
	"github.com/forum-news-api/internal/config"
	"github.com/forum-news-api/internal/mocks"
	"github.com/forum-news-api/internal/models"
	"github.com/forum-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func setupTestRouter(t testing.TB) (*gin.Engine, *mocks.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), zerolog.Nop())
	healthy := healthFunc(func(context.Context) error { return nil })

	return api.NewRouter(services, healthy, &config.Config{}, zerolog.Nop()), store
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Msg
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "forum-news-api", response["service"])
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), zerolog.Nop())
	down := healthFunc(func(context.Context) error { return errors.New("connection refused") })
	router := api.NewRouter(services, down, &config.Config{}, zerolog.Nop())

	w := doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestEndpointsDocument(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api", "")
	require.Equal(t, http.StatusOK, w.Code)

	var endpoints map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &endpoints))
	for _, key := range []string{
		"GET /api/topics",
		"GET /api/articles",
		"GET /api/articles/:article_id",
		"PATCH /api/articles/:article_id",
		"GET /api/articles/:article_id/comments",
		"POST /api/articles/:article_id/comments",
		"DELETE /api/comments/:comment_id",
		"GET /api/users",
	} {
		entry, ok := endpoints[key]
		if assert.True(t, ok, "missing %s", key) {
			assert.NotEmpty(t, entry["description"])
		}
	}
}

func TestGetTopics(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/topics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Topics []models.Topic `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Topics, 3)
	for _, topic := range resp.Topics {
		assert.NotEmpty(t, topic.Slug)
		assert.NotEmpty(t, topic.Description)
	}
}

func TestGetUsers(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []map[string]interface{} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 4)
	for _, user := range resp.Users {
		assert.Contains(t, user, "username")
		assert.Contains(t, user, "name")
		assert.Contains(t, user, "avatar_url")
	}
}

func TestGetArticles(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var raw struct {
		Articles []map[string]interface{} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw.Articles, 5)
	for _, article := range raw.Articles {
		assert.NotContains(t, article, "body")
		assert.Contains(t, article, "comment_count")
	}

	var resp struct {
		Articles []models.ArticleSummary `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	ids := make([]int, len(resp.Articles))
	for i, a := range resp.Articles {
		ids[i] = a.ArticleID
		if i > 0 {
			assert.False(t, a.CreatedAt.After(resp.Articles[i-1].CreatedAt), "articles must be newest first")
		}
	}
	assert.Equal(t, []int{3, 2, 5, 1, 4}, ids)
	assert.Equal(t, 11, resp.Articles[3].CommentCount)
}

func TestGetArticles_TopicFilter(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		topic string
		count int
	}{
		{"mitch", 4},
		{"cats", 1},
		{"paper", 0},
		{"not-a-topic", 0},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			w := doRequest(router, "GET", "/api/articles?topic="+tt.topic, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Articles []models.ArticleSummary `json:"articles"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Articles)
			assert.Len(t, resp.Articles, tt.count)
			for _, a := range resp.Articles {
				assert.Equal(t, tt.topic, a.Topic)
			}
		})
	}
}

func TestGetArticleByID(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/articles/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var article models.ArticleWithCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, 1, article.ArticleID)
	assert.Equal(t, "mitch", article.Topic)
	assert.Equal(t, "butter_bridge", article.Author)
	assert.NotEmpty(t, article.Body)
	assert.Equal(t, 100, article.Votes)
	assert.Equal(t, 11, article.CommentCount)

	w = doRequest(router, "GET", "/api/articles/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, 0, article.CommentCount)
}

func TestGetArticleByID_Errors(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{"non-numeric id", "/api/articles/pigeon", http.StatusBadRequest, "Bad Request"},
		{"zero id", "/api/articles/0", http.StatusBadRequest, "Bad Request"},
		{"negative id", "/api/articles/-3", http.StatusBadRequest, "Bad Request"},
		{"overflowing id", "/api/articles/99999999999999", http.StatusBadRequest, "Bad Request"},
		{"missing article", "/api/articles/1000", http.StatusNotFound, "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "GET", tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMsg(t, w))
		})
	}
}

func TestPatchArticleVotes(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "PATCH", "/api/articles/2", `{"inc_votes": 20}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		Article models.Article `json:"article"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Article.ArticleID)
	assert.Equal(t, 20, resp.Article.Votes)

	w = doRequest(router, "PATCH", "/api/articles/1", `{"inc_votes": -20}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 80, resp.Article.Votes)

	w = doRequest(router, "GET", "/api/articles/1", "")
	var article models.ArticleWithCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, 80, article.Votes)
}

func TestPatchArticleVotes_Errors(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"non-numeric id", "/api/articles/pigeon", `{"inc_votes": 1}`, http.StatusBadRequest, "Bad Request"},
		{"missing article", "/api/articles/1000", `{"inc_votes": 1}`, http.StatusNotFound, "Not Found"},
		{"missing inc_votes", "/api/articles/1", `{}`, http.StatusBadRequest, "Bad Request"},
		{"empty body", "/api/articles/1", "", http.StatusBadRequest, "Bad Request"},
		{"non-integer inc_votes", "/api/articles/1", `{"inc_votes": "cat"}`, http.StatusBadRequest, "Bad Request"},
		{"fractional inc_votes", "/api/articles/1", `{"inc_votes": 1.5}`, http.StatusBadRequest, "Bad Request"},
		{"malformed json", "/api/articles/1", `{"inc_votes":`, http.StatusBadRequest, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "PATCH", tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMsg(t, w))
		})
	}
}

func TestGetArticleComments(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 11)
	for i, c := range resp.Comments {
		assert.Equal(t, 1, c.ArticleID)
		if i > 0 {
			assert.False(t, c.CreatedAt.After(resp.Comments[i-1].CreatedAt), "comments must be newest first")
		}
	}

	// Existing article without comments
	w = doRequest(router, "GET", "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"comments": []}`, w.Body.String())
}

func TestGetArticleComments_Errors(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/articles/pigeon/comments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad Request", decodeMsg(t, w))

	w = doRequest(router, "GET", "/api/articles/1000/comments", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decodeMsg(t, w))
}

func TestPostComment(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "POST", "/api/articles/2/comments", `{"username": "lurker", "body": "first!"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 14, resp.Comment.CommentID)
	assert.Equal(t, 2, resp.Comment.ArticleID)
	assert.Equal(t, "lurker", resp.Comment.Author)
	assert.Equal(t, "first!", resp.Comment.Body)
	assert.Equal(t, 0, resp.Comment.Votes)
	assert.False(t, resp.Comment.CreatedAt.IsZero())

	w = doRequest(router, "GET", "/api/articles/2", "")
	var article models.ArticleWithCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, 1, article.CommentCount)
}

func TestPostComment_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"non-numeric id", "/api/articles/pigeon/comments", `{"username": "lurker", "body": "hi"}`, http.StatusBadRequest, "Bad Request"},
		{"missing article", "/api/articles/1000/comments", `{"username": "lurker", "body": "hi"}`, http.StatusNotFound, "Not Found"},
		{"missing article reported before empty body", "/api/articles/1000/comments", "", http.StatusNotFound, "Not Found"},
		{"missing username", "/api/articles/1/comments", `{"body": "hi"}`, http.StatusBadRequest, "Bad Request"},
		{"missing body", "/api/articles/1/comments", `{"username": "lurker"}`, http.StatusBadRequest, "Bad Request"},
		{"blank body", "/api/articles/1/comments", `{"username": "lurker", "body": "   "}`, http.StatusBadRequest, "Bad Request"},
		{"empty payload", "/api/articles/1/comments", `{}`, http.StatusBadRequest, "Bad Request"},
		{"wrong-typed username", "/api/articles/1/comments", `{"username": 7, "body": "hi"}`, http.StatusBadRequest, "Bad Request"},
		{"unknown user", "/api/articles/1/comments", `{"username": "ghost", "body": "hi"}`, http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := setupTestRouter(t)

			w := doRequest(router, "POST", tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMsg(t, w))
			assert.Len(t, store.Comments.Comments, 13, "rejected requests must not write")
		})
	}
}

func TestDeleteComment(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "DELETE", "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(router, "GET", "/api/articles/1", "")
	var article models.ArticleWithCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, 10, article.CommentCount)

	w = doRequest(router, "DELETE", "/api/comments/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeMsg(t, w))
}

func TestDeleteComment_Errors(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "DELETE", "/api/comments/pigeon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad Request", decodeMsg(t, w))

	w = doRequest(router, "DELETE", "/api/comments/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeMsg(t, w))
}

func TestStorageErrorsAreClassified(t *testing.T) {
	t.Run("invalid text representation", func(t *testing.T) {
		router, store := setupTestRouter(t)
		store.Topics.ListError = &pq.Error{Code: "22P02", Message: "invalid input syntax for type integer"}

		w := doRequest(router, "GET", "/api/topics", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Bad Request", decodeMsg(t, w))
	})

	t.Run("not null violation on insert", func(t *testing.T) {
		router, store := setupTestRouter(t)
		store.Comments.CreateError = &pq.Error{Code: "23502", Message: "null value in column \"body\""}

		w := doRequest(router, "POST", "/api/articles/1/comments", `{"username": "lurker", "body": "hi"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Bad Request", decodeMsg(t, w))
	})

	t.Run("foreign key violation on insert", func(t *testing.T) {
		router, store := setupTestRouter(t)
		store.Comments.CreateError = &pq.Error{Code: "23503", Message: "comments_author_fkey"}

		w := doRequest(router, "POST", "/api/articles/1/comments", `{"username": "lurker", "body": "hi"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", decodeMsg(t, w))
	})

	t.Run("unrecognised storage code", func(t *testing.T) {
		router, store := setupTestRouter(t)
		store.Articles.ListError = &pq.Error{Code: "42P01", Message: "relation \"articles\" does not exist"}

		w := doRequest(router, "GET", "/api/articles", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", decodeMsg(t, w))
	})

	t.Run("plain failure", func(t *testing.T) {
		router, store := setupTestRouter(t)
		store.Users.ListError = errors.New("connection reset by peer")

		w := doRequest(router, "GET", "/api/users", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", decodeMsg(t, w))
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

type panickingTopics struct{}

func (panickingTopics) ListTopics(ctx context.Context) ([]models.Topic, error) {
	panic("boom")
}

func TestPanicRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), zerolog.Nop())
	services.Topic = panickingTopics{}
	router := api.NewRouter(services, nil, &config.Config{}, zerolog.Nop())

	w := doRequest(router, "GET", "/api/topics", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeMsg(t, w))

	// The router keeps serving afterwards
	w = doRequest(router, "GET", "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/not-a-route", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decodeMsg(t, w))
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "GET", "/api/topics", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/api/topics", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestCORSHeaders(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/articles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORSRestrictedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), zerolog.Nop())
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"https://forum.example.com"}}}
	router := api.NewRouter(services, nil, cfg, zerolog.Nop())

	req := httptest.NewRequest("GET", "/api/topics", nil)
	req.Header.Set("Origin", "https://forum.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://forum.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/api/topics", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGzipResponses(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/articles", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	doRequest(router, "GET", "/api/topics", "")
	doRequest(router, "GET", "/api/articles/pigeon", "")

	w := doRequest(router, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `forum_http_requests_total{method="GET",path="/api/topics",status="200"}`)
	assert.Contains(t, body, `forum_http_requests_total{method="GET",path="/api/articles/:article_id",status="400"}`)
	assert.Contains(t, body, "forum_http_request_duration_seconds")
}
