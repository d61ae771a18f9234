package models

import (
	"time"

	"gorm.io/gorm"
)

// Bookmark categories. An empty category means uncategorized.
const (
	CategoryTechnology    = "technology"
	CategoryDesign        = "design"
	CategoryEducation     = "education"
	CategoryEntertainment = "entertainment"
	CategoryBusiness      = "business"
	CategoryNews          = "news"
	CategoryOther         = "other"
)

// ValidCategory reports whether category is one of the fixed set or empty.
func ValidCategory(category string) bool {
	switch category {
	case "", CategoryTechnology, CategoryDesign, CategoryEducation,
		CategoryEntertainment, CategoryBusiness, CategoryNews, CategoryOther:
		return true
	}
	return false
}

// Bookmark represents a saved URL owned by one user, optionally public.
type Bookmark struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	URL         string   `gorm:"not null" json:"url"`
	Description string   `gorm:"type:text" json:"description"`
	Category    string   `gorm:"index" json:"category"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	IsPublic    bool     `gorm:"index" json:"is_public"`
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	// OwnerUsername is not persisted; joined from users at query time
	OwnerUsername string `gorm:"->" json:"owner_username"`
	// FavoritedByViewer indicates whether the current requesting user favorited
	// this bookmark (computed at query time, false for anonymous viewers)
	FavoritedByViewer bool           `gorm:"->" json:"favorited_by_viewer"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BookmarkView is the render-ready projection of a Bookmark for one viewer.
// It is derived fresh per request and never persisted.
type BookmarkView struct {
	Bookmark
	IsOwner     bool   `json:"is_owner"`
	IsFavorited bool   `json:"is_favorited"`
	DisplayHost string `json:"display_host"`
	TagLine     string `json:"tag_line"`
}
