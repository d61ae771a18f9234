package models

import "time"

// Favorite marks a user's favorite on a bookmark.
// The combination of UserID and BookmarkID must be unique; the database
// constraint is the source of truth for that invariant, not the client.
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_bookmark" json:"user_id"`
	BookmarkID uint      `gorm:"not null;uniqueIndex:idx_user_bookmark" json:"bookmark_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Bookmark Bookmark `gorm:"foreignKey:BookmarkID" json:"bookmark"`
}
