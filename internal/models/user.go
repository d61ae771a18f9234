// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account on Linkstash. The profile fields (username, bio,
// website, avatar) are created implicitly at signup and mutated only through
// the profile-edit endpoint.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Website   string         `json:"website"`
	AvatarURL string         `json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Bookmarks []Bookmark     `gorm:"foreignKey:UserID" json:"bookmarks,omitempty"`
}

// ProfileStats summarizes a user's activity for the profile page.
type ProfileStats struct {
	Bookmarks int64 `json:"bookmarks"`
	Favorites int64 `json:"favorites"`
}
