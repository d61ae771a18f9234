package repository

import (
	"context"
	"errors"

	"linkstash/internal/cache"
	"linkstash/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateFavorite is returned by AddFavorite when the (user, bookmark)
// pair already exists. The unique index is the source of truth, so a
// concurrent toggle can surface this even after a lookup saw no row.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// BookmarkRepository defines persistence operations for bookmarks and favorites.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Bookmark, error)
	ListPublic(ctx context.Context, currentUserID uint) ([]*models.Bookmark, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Bookmark, error)
	ListFavorites(ctx context.Context, userID uint) ([]*models.Bookmark, error)
	Update(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, id uint) error
	IsFavorited(ctx context.Context, userID, bookmarkID uint) (bool, error)
	AddFavorite(ctx context.Context, userID, bookmarkID uint) error
	RemoveFavorite(ctx context.Context, userID, bookmarkID uint) error
	Stats(ctx context.Context, userID uint) (*models.ProfileStats, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// applyViewerDetails adds subqueries selecting the owner username and the
// current viewer's favorite flag in a single query. Anonymous viewers get
// favorited_by_viewer = false.
func (r *bookmarkRepository) applyViewerDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "bookmarks.*, " +
		"(SELECT username FROM users WHERE users.id = bookmarks.user_id AND users.deleted_at IS NULL) as owner_username"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM favorites WHERE favorites.bookmark_id = bookmarks.id AND favorites.user_id = ?) as favorited_by_viewer", currentUserID)
	}

	return db.Select(selectQuery + ", false as favorited_by_viewer")
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePublicFeed(ctx)
	cache.InvalidateUserContent(ctx, bookmark.UserID)
	return nil
}

func (r *bookmarkRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.applyViewerDetails(r.db.WithContext(ctx).Model(&models.Bookmark{}), currentUserID).
		First(&bookmark, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Bookmark", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) ListPublic(ctx context.Context, currentUserID uint) ([]*models.Bookmark, error) {
	var bookmarks []*models.Bookmark
	err := r.applyViewerDetails(r.db.WithContext(ctx).Model(&models.Bookmark{}), currentUserID).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Bookmark, error) {
	// No public-only filter: the owner sees their private bookmarks too.
	var bookmarks []*models.Bookmark
	err := r.applyViewerDetails(r.db.WithContext(ctx).Model(&models.Bookmark{}), ownerID).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) ListFavorites(ctx context.Context, userID uint) ([]*models.Bookmark, error) {
	// Inner join through favorites: favorites whose bookmark was deleted are
	// silently dropped, ordered by when the favorite was created.
	var bookmarks []*models.Bookmark
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Select("bookmarks.*, "+
			"(SELECT username FROM users WHERE users.id = bookmarks.user_id AND users.deleted_at IS NULL) as owner_username, "+
			"true as favorited_by_viewer").
		Joins("JOIN favorites ON favorites.bookmark_id = bookmarks.id AND favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Update(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Save(bookmark).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePublicFeed(ctx)
	cache.InvalidateUserContent(ctx, bookmark.UserID)
	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, id uint) error {
	// Deleting an already-deleted ID affects zero rows and is a no-op success.
	if err := r.db.WithContext(ctx).Delete(&models.Bookmark{}, id).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePublicFeed(ctx)
	return nil
}

func (r *bookmarkRepository) IsFavorited(ctx context.Context, userID, bookmarkID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND bookmark_id = ?", userID, bookmarkID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *bookmarkRepository) AddFavorite(ctx context.Context, userID, bookmarkID uint) error {
	favorite := &models.Favorite{UserID: userID, BookmarkID: bookmarkID}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateFavorite
		}
		return models.NewStoreError(err)
	}
	cache.InvalidatePublicFeed(ctx)
	cache.InvalidateUserContent(ctx, userID)
	return nil
}

func (r *bookmarkRepository) RemoveFavorite(ctx context.Context, userID, bookmarkID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bookmark_id = ?", userID, bookmarkID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePublicFeed(ctx)
	cache.InvalidateUserContent(ctx, userID)
	return nil
}

func (r *bookmarkRepository) Stats(ctx context.Context, userID uint) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	key := cache.UserStatsKey(userID)

	err := cache.Aside(ctx, key, &stats, cache.StatsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Bookmark{}).
			Where("user_id = ?", userID).
			Count(&stats.Bookmarks).Error; err != nil {
			return models.NewStoreError(err)
		}

		// Count only favorites whose bookmark still exists, matching the
		// favorites listing.
		if err := r.db.WithContext(ctx).
			Model(&models.Favorite{}).
			Joins("JOIN bookmarks ON bookmarks.id = favorites.bookmark_id AND bookmarks.deleted_at IS NULL").
			Where("favorites.user_id = ?", userID).
			Count(&stats.Favorites).Error; err != nil {
			return models.NewStoreError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
