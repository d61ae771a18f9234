package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkstash/internal/config"
	"linkstash/internal/models"
	"linkstash/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookmarkRepository is a mock of the BookmarkRepository interface
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	if args.Error(0) == nil {
		bookmark.ID = 1
	}
	return args.Error(0)
}

func (m *MockBookmarkRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Bookmark, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) ListPublic(ctx context.Context, currentUserID uint) ([]*models.Bookmark, error) {
	args := m.Called(ctx, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Bookmark, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) ListFavorites(ctx context.Context, userID uint) ([]*models.Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Update(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookmarkRepository) IsFavorited(ctx context.Context, userID, bookmarkID uint) (bool, error) {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) AddFavorite(ctx context.Context, userID, bookmarkID uint) error {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Error(0)
}

func (m *MockBookmarkRepository) RemoveFavorite(ctx context.Context, userID, bookmarkID uint) error {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Error(0)
}

func (m *MockBookmarkRepository) Stats(ctx context.Context, userID uint) (*models.ProfileStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileStats), args.Error(1)
}

func newTestServer(bookmarkRepo *MockBookmarkRepository) *Server {
	s := &Server{
		config:       &config.Config{JWTSecret: "test-secret-at-least-32-characters-long"},
		bookmarkRepo: bookmarkRepo,
		authGuard:    service.NewInflightGuard(),
	}
	s.bookmarkService = service.NewBookmarkService(bookmarkRepo)
	return s
}

// withUser simulates the AuthRequired middleware having run.
func withUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func TestCreateBookmark(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(*MockBookmarkRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"title":     "Go Blog",
				"url":       "https://go.dev/blog",
				"category":  "technology",
				"tags":      []string{"golang"},
				"is_public": true,
			},
			mockSetup: func(repo *MockBookmarkRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
				repo.On("GetByID", mock.Anything, uint(1), uint(1)).
					Return(&models.Bookmark{ID: 1, UserID: 1, Title: "Go Blog", URL: "https://go.dev/blog", OwnerUsername: "alice"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing title",
			body:           map[string]any{"url": "https://go.dev/blog"},
			mockSetup:      func(*MockBookmarkRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad URL",
			body:           map[string]any{"title": "T", "url": "not a url"},
			mockSetup:      func(*MockBookmarkRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown category",
			body:           map[string]any{"title": "T", "url": "https://go.dev", "category": "banana"},
			mockSetup:      func(*MockBookmarkRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookmarkRepository)
			tt.mockSetup(mockRepo)
			s := newTestServer(mockRepo)

			app := fiber.New()
			app.Post("/bookmarks", withUser(1), s.CreateBookmark)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/bookmarks", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetPublicBookmarks(t *testing.T) {
	mockRepo := new(MockBookmarkRepository)
	mockRepo.On("ListPublic", mock.Anything, uint(0)).Return([]*models.Bookmark{
		{ID: 1, Title: "Go Tour", URL: "https://go.dev/tour", Category: models.CategoryTechnology, IsPublic: true, OwnerUsername: "alice"},
		{ID: 2, Title: "Recipes", URL: "https://food.example.com", Category: models.CategoryOther, IsPublic: true, OwnerUsername: "bob"},
	}, nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Get("/bookmarks", s.GetPublicBookmarks)

	req := httptest.NewRequest(http.MethodGet, "/bookmarks?category=technology", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Bookmarks []models.BookmarkView `json:"bookmarks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Bookmarks, 1)
	assert.Equal(t, "Go Tour", body.Bookmarks[0].Title)
	assert.Equal(t, "go.dev", body.Bookmarks[0].DisplayHost)
	assert.False(t, body.Bookmarks[0].IsOwner)
}

func TestGetBookmark_PrivateHiddenFromStrangers(t *testing.T) {
	mockRepo := new(MockBookmarkRepository)
	mockRepo.On("GetByID", mock.Anything, uint(3), uint(0)).
		Return(&models.Bookmark{ID: 3, UserID: 5, URL: "https://example.com", IsPublic: false}, nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Get("/bookmarks/:id", s.GetBookmark)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bookmarks/3", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleFavorite(t *testing.T) {
	mockRepo := new(MockBookmarkRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Bookmark{ID: 7, UserID: 2, URL: "https://example.com", IsPublic: true}, nil)
	mockRepo.On("IsFavorited", mock.Anything, uint(1), uint(7)).Return(false, nil)
	mockRepo.On("AddFavorite", mock.Anything, uint(1), uint(7)).Return(nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Post("/bookmarks/:id/favorite", withUser(1), s.ToggleFavorite)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bookmarks/7/favorite", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["favorited"])
	mockRepo.AssertExpectations(t)
}

func TestToggleFavorite_InvalidID(t *testing.T) {
	s := newTestServer(new(MockBookmarkRepository))
	app := fiber.New()
	app.Post("/bookmarks/:id/favorite", withUser(1), s.ToggleFavorite)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bookmarks/abc/favorite", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteBookmark(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepository)
		mockRepo.On("GetByID", mock.Anything, uint(3), uint(1)).
			Return(&models.Bookmark{ID: 3, UserID: 1, URL: "https://example.com"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		s := newTestServer(mockRepo)
		app := fiber.New()
		app.Delete("/bookmarks/:id", withUser(1), s.DeleteBookmark)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/bookmarks/3", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepository)
		mockRepo.On("GetByID", mock.Anything, uint(3), uint(9)).
			Return(&models.Bookmark{ID: 3, UserID: 1, URL: "https://example.com"}, nil)

		s := newTestServer(mockRepo)
		app := fiber.New()
		app.Delete("/bookmarks/:id", withUser(9), s.DeleteBookmark)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/bookmarks/3", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUpdateBookmark(t *testing.T) {
	mockRepo := new(MockBookmarkRepository)
	mockRepo.On("GetByID", mock.Anything, uint(3), uint(1)).
		Return(&models.Bookmark{ID: 3, UserID: 1, Title: "Old", URL: "https://example.com"}, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Put("/bookmarks/:id", withUser(1), s.UpdateBookmark)

	body, _ := json.Marshal(map[string]any{"title": "New Title"})
	req := httptest.NewRequest(http.MethodPut, "/bookmarks/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.BookmarkView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "New Title", view.Title)
	mockRepo.AssertExpectations(t)
}

func TestGetMyStats(t *testing.T) {
	mockRepo := new(MockBookmarkRepository)
	mockRepo.On("Stats", mock.Anything, uint(1)).
		Return(&models.ProfileStats{Bookmarks: 12, Favorites: 4}, nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Get("/users/me/stats", withUser(1), s.GetMyStats)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me/stats", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.ProfileStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(12), stats.Bookmarks)
	assert.Equal(t, int64(4), stats.Favorites)
}
