package service

import (
	"strings"

	"linkstash/internal/models"
)

// CategoryAll disables category narrowing.
const CategoryAll = "all"

// FilterOptions holds the feed-narrowing state for one request. The zero
// value selects everything.
type FilterOptions struct {
	Category string
	Term     string
}

// FilterBookmarks narrows bookmarks to those matching opts, preserving the
// input order. Filtering is a pure view concern: the input slice is never
// mutated and the result only ever contains elements of the input.
//
// The search term is trimmed and matched case-insensitively as a substring
// against the title, the description, and each tag.
func FilterBookmarks(bookmarks []*models.Bookmark, opts FilterOptions) []*models.Bookmark {
	category := opts.Category
	if category == "" {
		category = CategoryAll
	}
	term := strings.ToLower(strings.TrimSpace(opts.Term))

	// Both filters inactive: hand back the input untouched.
	if category == CategoryAll && term == "" {
		return bookmarks
	}

	filtered := make([]*models.Bookmark, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		if category != CategoryAll && bookmark.Category != category {
			continue
		}
		if term != "" && !matchesTerm(bookmark, term) {
			continue
		}
		filtered = append(filtered, bookmark)
	}
	return filtered
}

// matchesTerm reports whether the already-lowercased term occurs in the
// bookmark's title, description, or any tag.
func matchesTerm(bookmark *models.Bookmark, term string) bool {
	if strings.Contains(strings.ToLower(bookmark.Title), term) {
		return true
	}
	if bookmark.Description != "" && strings.Contains(strings.ToLower(bookmark.Description), term) {
		return true
	}
	for _, tag := range bookmark.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
