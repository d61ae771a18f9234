// Package service contains the business logic layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linkstash/internal/cache"
	"linkstash/internal/middleware"
	"linkstash/internal/models"
	"linkstash/internal/repository"
	"linkstash/internal/validation"
)

const (
	maxTitleLength       = 300
	maxDescriptionLength = 2000
	maxTagCount          = 20
	maxTagLength         = 50
)

// BookmarkService handles bookmark and favorite business logic.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	inflight     *InflightGuard
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		inflight:     NewInflightGuard(),
	}
}

// CreateBookmarkInput carries the fields accepted when saving a new bookmark.
type CreateBookmarkInput struct {
	Title       string
	URL         string
	Description string
	Category    string
	Tags        []string
	IsPublic    bool
}

// UpdateBookmarkInput carries the fields accepted when editing a bookmark.
// Nil pointers leave the stored value unchanged.
type UpdateBookmarkInput struct {
	Title       *string
	URL         *string
	Description *string
	Category    *string
	Tags        []string
	IsPublic    *bool
}

// CreateBookmark validates and persists a new bookmark for userID. While a
// create for the same user is still in flight, further creates are rejected
// with a DuplicateSubmission error so a double-click cannot save two rows.
func (s *BookmarkService) CreateBookmark(ctx context.Context, userID uint, input CreateBookmarkInput) (*models.BookmarkView, error) {
	if userID == 0 {
		return nil, models.NewAuthRequiredError("You must be logged in to save bookmarks")
	}

	key := fmt.Sprintf("create-bookmark:%d", userID)
	if !s.inflight.Begin(key) {
		middleware.DuplicateSubmissions.WithLabelValues("create_bookmark").Inc()
		return nil, models.NewDuplicateSubmissionError("save bookmark")
	}
	defer s.inflight.End(key)

	bookmark, err := buildBookmark(userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}

	// Re-read so the view carries the joined owner username.
	created, err := s.bookmarkRepo.GetByID(ctx, bookmark.ID, userID)
	if err != nil {
		return nil, err
	}
	view := BuildBookmarkView(created, userID)
	return &view, nil
}

func buildBookmark(userID uint, input CreateBookmarkInput) (*models.Bookmark, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLength {
		return nil, models.NewValidationError(fmt.Sprintf("Title must not exceed %d characters", maxTitleLength))
	}
	if err := validateBookmarkURL(input.URL); err != nil {
		return nil, err
	}
	if !models.ValidCategory(input.Category) {
		return nil, models.NewValidationError("Unknown category")
	}
	if len(input.Description) > maxDescriptionLength {
		return nil, models.NewValidationError(fmt.Sprintf("Description must not exceed %d characters", maxDescriptionLength))
	}
	tags, err := cleanTags(input.Tags)
	if err != nil {
		return nil, err
	}

	return &models.Bookmark{
		Title:       title,
		URL:         strings.TrimSpace(input.URL),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Tags:        tags,
		IsPublic:    input.IsPublic,
		UserID:      userID,
	}, nil
}

// GetBookmark fetches one bookmark as seen by currentUserID. Private
// bookmarks are only visible to their owner; everyone else gets NotFound so
// their existence is not leaked.
func (s *BookmarkService) GetBookmark(ctx context.Context, id uint, currentUserID uint) (*models.BookmarkView, error) {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !bookmark.IsPublic && bookmark.UserID != currentUserID {
		return nil, models.NewNotFoundError("Bookmark", id)
	}
	view := BuildBookmarkView(bookmark, currentUserID)
	return &view, nil
}

// ListPublicFeed returns the public feed narrowed by opts, rendered for
// currentUserID. The unfiltered anonymous snapshot is served cache-aside;
// logged-in viewers always hit the store because their favorite flags are
// viewer-specific.
func (s *BookmarkService) ListPublicFeed(ctx context.Context, currentUserID uint, opts FilterOptions) ([]models.BookmarkView, error) {
	var bookmarks []*models.Bookmark
	var err error

	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PublicFeedKey, &bookmarks, cache.FeedTTL, func() error {
			var fetchErr error
			bookmarks, fetchErr = s.bookmarkRepo.ListPublic(ctx, 0)
			return fetchErr
		})
	} else {
		bookmarks, err = s.bookmarkRepo.ListPublic(ctx, currentUserID)
	}
	if err != nil {
		return nil, err
	}

	return BuildBookmarkViews(FilterBookmarks(bookmarks, opts), currentUserID), nil
}

// ListOwn returns userID's bookmarks, public and private, newest first.
func (s *BookmarkService) ListOwn(ctx context.Context, userID uint, opts FilterOptions) ([]models.BookmarkView, error) {
	if userID == 0 {
		return nil, models.NewAuthRequiredError("You must be logged in to view your bookmarks")
	}
	bookmarks, err := s.bookmarkRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildBookmarkViews(FilterBookmarks(bookmarks, opts), userID), nil
}

// ListFavorites returns the bookmarks userID has favorited, most recently
// favorited first. Favorites whose bookmark has since been deleted do not
// appear.
func (s *BookmarkService) ListFavorites(ctx context.Context, userID uint) ([]models.BookmarkView, error) {
	if userID == 0 {
		return nil, models.NewAuthRequiredError("You must be logged in to view favorites")
	}
	bookmarks, err := s.bookmarkRepo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildBookmarkViews(bookmarks, userID), nil
}

// UpdateBookmark applies a partial edit to one of userID's bookmarks.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, id uint, userID uint, input UpdateBookmarkInput) (*models.BookmarkView, error) {
	if userID == 0 {
		return nil, models.NewAuthRequiredError("You must be logged in to edit bookmarks")
	}

	bookmark, err := s.bookmarkRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own bookmarks")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(title) > maxTitleLength {
			return nil, models.NewValidationError(fmt.Sprintf("Title must not exceed %d characters", maxTitleLength))
		}
		bookmark.Title = title
	}
	if input.URL != nil {
		if err := validateBookmarkURL(*input.URL); err != nil {
			return nil, err
		}
		bookmark.URL = strings.TrimSpace(*input.URL)
	}
	if input.Description != nil {
		if len(*input.Description) > maxDescriptionLength {
			return nil, models.NewValidationError(fmt.Sprintf("Description must not exceed %d characters", maxDescriptionLength))
		}
		bookmark.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			return nil, models.NewValidationError("Unknown category")
		}
		bookmark.Category = *input.Category
	}
	if input.Tags != nil {
		tags, err := cleanTags(input.Tags)
		if err != nil {
			return nil, err
		}
		bookmark.Tags = tags
	}
	if input.IsPublic != nil {
		bookmark.IsPublic = *input.IsPublic
	}

	if err := s.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return nil, err
	}
	view := BuildBookmarkView(bookmark, userID)
	return &view, nil
}

// DeleteBookmark removes one of userID's bookmarks. Deleting a bookmark
// that is already gone succeeds, so retrying a delete is harmless.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, id uint, userID uint) error {
	if userID == 0 {
		return models.NewAuthRequiredError("You must be logged in to delete bookmarks")
	}

	bookmark, err := s.bookmarkRepo.GetByID(ctx, id, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil
		}
		return err
	}
	if bookmark.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own bookmarks")
	}

	return s.bookmarkRepo.Delete(ctx, id)
}

// ToggleFavorite flips userID's favorite on a bookmark and returns the new
// state. The unique index on (user, bookmark) is the arbiter for races: if
// the insert loses to a concurrent toggle, the call falls through to the
// remove path instead of failing.
func (s *BookmarkService) ToggleFavorite(ctx context.Context, userID, bookmarkID uint) (bool, error) {
	if userID == 0 {
		return false, models.NewAuthRequiredError("You must be logged in to favorite bookmarks")
	}

	if _, err := s.bookmarkRepo.GetByID(ctx, bookmarkID, userID); err != nil {
		return false, err
	}

	favorited, err := s.bookmarkRepo.IsFavorited(ctx, userID, bookmarkID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := s.bookmarkRepo.RemoveFavorite(ctx, userID, bookmarkID); err != nil {
			return false, err
		}
		middleware.FavoriteToggles.WithLabelValues("removed").Inc()
		return false, nil
	}

	if err := s.bookmarkRepo.AddFavorite(ctx, userID, bookmarkID); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			// Lost the race to another add: the row exists, so this
			// toggle removes it.
			if err := s.bookmarkRepo.RemoveFavorite(ctx, userID, bookmarkID); err != nil {
				return false, err
			}
			middleware.FavoriteToggles.WithLabelValues("removed").Inc()
			return false, nil
		}
		return false, err
	}
	middleware.FavoriteToggles.WithLabelValues("added").Inc()
	return true, nil
}

// Stats returns activity counters for the profile page.
func (s *BookmarkService) Stats(ctx context.Context, userID uint) (*models.ProfileStats, error) {
	if userID == 0 {
		return nil, models.NewAuthRequiredError("You must be logged in to view stats")
	}
	return s.bookmarkRepo.Stats(ctx, userID)
}

func validateBookmarkURL(raw string) error {
	if err := validation.ValidateBookmarkURL(raw); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func cleanTags(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw) > maxTagCount {
		return nil, models.NewValidationError(fmt.Sprintf("At most %d tags are allowed", maxTagCount))
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if len(t) > maxTagLength {
			return nil, models.NewValidationError(fmt.Sprintf("Tags must not exceed %d characters", maxTagLength))
		}
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
