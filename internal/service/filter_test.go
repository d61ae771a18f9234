package service

import (
	"testing"

	"linkstash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBookmarks() []*models.Bookmark {
	return []*models.Bookmark{
		{ID: 1, Title: "A Tour of Go", Description: "Interactive introduction", Category: models.CategoryTechnology, Tags: []string{"golang", "tutorial"}},
		{ID: 2, Title: "Design Principles", Description: "Layout and color theory", Category: models.CategoryDesign, Tags: []string{"css"}},
		{ID: 3, Title: "Weeknight Cooking", Description: "Simple recipes", Category: models.CategoryOther, Tags: []string{"food"}},
		{ID: 4, Title: "Market Report", Description: "Quarterly business news", Category: models.CategoryBusiness},
	}
}

func TestFilterBookmarks_Identity(t *testing.T) {
	t.Parallel()

	bookmarks := sampleBookmarks()

	tests := []struct {
		name string
		opts FilterOptions
	}{
		{name: "zero value", opts: FilterOptions{}},
		{name: "explicit all", opts: FilterOptions{Category: CategoryAll}},
		{name: "whitespace term", opts: FilterOptions{Category: CategoryAll, Term: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterBookmarks(bookmarks, tt.opts)
			require.Len(t, result, len(bookmarks))
			for i := range bookmarks {
				// Identity case hands back the same elements, not copies.
				assert.Same(t, bookmarks[i], result[i])
			}
		})
	}
}

func TestFilterBookmarks_Category(t *testing.T) {
	t.Parallel()

	result := FilterBookmarks(sampleBookmarks(), FilterOptions{Category: models.CategoryDesign})
	require.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ID)
}

func TestFilterBookmarks_Term(t *testing.T) {
	t.Parallel()

	bookmarks := sampleBookmarks()

	tests := []struct {
		name        string
		term        string
		expectedIDs []uint
	}{
		{name: "matches title", term: "cooking", expectedIDs: []uint{3}},
		{name: "matches description", term: "recipes", expectedIDs: []uint{3}},
		{name: "matches tag", term: "golang", expectedIDs: []uint{1}},
		{name: "case insensitive", term: "GO", expectedIDs: []uint{1}},
		{name: "trimmed before matching", term: "  design  ", expectedIDs: []uint{2}},
		{name: "substring across fields", term: "news", expectedIDs: []uint{4}},
		{name: "no match", term: "zzzz", expectedIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterBookmarks(bookmarks, FilterOptions{Term: tt.term})
			ids := make([]uint, 0, len(result))
			for _, b := range result {
				ids = append(ids, b.ID)
			}
			if tt.expectedIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.expectedIDs, ids)
			}
		})
	}
}

func TestFilterBookmarks_CategoryAndTerm(t *testing.T) {
	t.Parallel()

	// Both filters active: a bookmark must satisfy both.
	result := FilterBookmarks(sampleBookmarks(), FilterOptions{
		Category: models.CategoryTechnology,
		Term:     "cooking",
	})
	assert.Empty(t, result)

	result = FilterBookmarks(sampleBookmarks(), FilterOptions{
		Category: models.CategoryTechnology,
		Term:     "tour",
	})
	require.Len(t, result, 1)
	assert.Equal(t, uint(1), result[0].ID)
}

func TestFilterBookmarks_PreservesOrder(t *testing.T) {
	t.Parallel()

	bookmarks := []*models.Bookmark{
		{ID: 5, Title: "go routines"},
		{ID: 2, Title: "going places"},
		{ID: 9, Title: "go generics"},
	}

	result := FilterBookmarks(bookmarks, FilterOptions{Term: "go"})
	require.Len(t, result, 3)
	assert.Equal(t, uint(5), result[0].ID)
	assert.Equal(t, uint(2), result[1].ID)
	assert.Equal(t, uint(9), result[2].ID)
}

func TestFilterBookmarks_Idempotent(t *testing.T) {
	t.Parallel()

	opts := FilterOptions{Category: models.CategoryTechnology, Term: "go"}
	once := FilterBookmarks(sampleBookmarks(), opts)
	twice := FilterBookmarks(once, opts)
	assert.Equal(t, once, twice)
}

func TestFilterBookmarks_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	bookmarks := sampleBookmarks()
	original := make([]*models.Bookmark, len(bookmarks))
	copy(original, bookmarks)

	FilterBookmarks(bookmarks, FilterOptions{Category: models.CategoryDesign, Term: "layout"})
	assert.Equal(t, original, bookmarks)
}

func TestFilterBookmarks_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FilterBookmarks(nil, FilterOptions{Term: "go"}))
	assert.Empty(t, FilterBookmarks([]*models.Bookmark{}, FilterOptions{Category: models.CategoryNews}))
}
