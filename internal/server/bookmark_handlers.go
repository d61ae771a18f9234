package server

import (
	"linkstash/internal/models"
	"linkstash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPublicBookmarks handles GET /api/bookmarks. It serves the public feed,
// optionally narrowed by ?category= and ?q=, with viewer-specific fields
// resolved when a valid session token accompanies the request.
func (s *Server) GetPublicBookmarks(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	views, err := s.bookmarkService.ListPublicFeed(c.Context(), userID, filterOptionsFromQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarks": views})
}

// GetBookmark handles GET /api/bookmarks/:id
func (s *Server) GetBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	view, err := s.bookmarkService.GetBookmark(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// CreateBookmark handles POST /api/bookmarks
func (s *Server) CreateBookmark(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		IsPublic    bool     `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.bookmarkService.CreateBookmark(c.Context(), currentUserID(c), service.CreateBookmarkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateBookmark handles PUT /api/bookmarks/:id
func (s *Server) UpdateBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string  `json:"title"`
		URL         *string  `json:"url"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Tags        []string `json:"tags"`
		IsPublic    *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.bookmarkService.UpdateBookmark(c.Context(), id, currentUserID(c), service.UpdateBookmarkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// DeleteBookmark handles DELETE /api/bookmarks/:id
func (s *Server) DeleteBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.DeleteBookmark(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bookmark deleted"})
}

// ToggleFavorite handles POST /api/bookmarks/:id/favorite. The response
// reports the resulting state so the client can render without guessing.
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorited, err := s.bookmarkService.ToggleFavorite(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"favorited": favorited})
}
