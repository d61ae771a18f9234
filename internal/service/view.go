package service

import (
	"net/url"
	"strings"

	"linkstash/internal/models"
)

// Placeholders used when a stored bookmark carries data the view cannot
// render directly. Bad data degrades to a placeholder, never to an error.
const (
	invalidURLHost = "invalid URL"
	unknownOwner   = "unknown user"
)

// BuildBookmarkView projects a bookmark into its render-ready form for one
// viewer. It is total: any stored bookmark produces a view.
func BuildBookmarkView(bookmark *models.Bookmark, currentUserID uint) models.BookmarkView {
	view := models.BookmarkView{
		Bookmark:    *bookmark,
		IsOwner:     currentUserID != 0 && bookmark.UserID == currentUserID,
		IsFavorited: bookmark.FavoritedByViewer,
		DisplayHost: displayHost(bookmark.URL),
		TagLine:     strings.Join(bookmark.Tags, ", "),
	}
	if view.OwnerUsername == "" {
		view.OwnerUsername = unknownOwner
	}
	return view
}

// BuildBookmarkViews projects a slice of bookmarks, preserving order.
func BuildBookmarkViews(bookmarks []*models.Bookmark, currentUserID uint) []models.BookmarkView {
	views := make([]models.BookmarkView, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		views = append(views, BuildBookmarkView(bookmark, currentUserID))
	}
	return views
}

// displayHost extracts the hostname for display. Anything that does not
// parse to a URL with a host gets the placeholder.
func displayHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return invalidURLHost
	}
	return parsed.Hostname()
}
