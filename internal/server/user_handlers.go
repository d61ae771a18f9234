package server

import (
	"linkstash/internal/models"
	"linkstash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username     string `json:"username"`
		Bio          string `json:"bio"`
		ClearBio     bool   `json:"clear_bio"`
		Website      string `json:"website"`
		ClearWebsite bool   `json:"clear_website"`
		AvatarURL    string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:       currentUserID(c),
		Username:     req.Username,
		Bio:          req.Bio,
		ClearBio:     req.ClearBio,
		Website:      req.Website,
		ClearWebsite: req.ClearWebsite,
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetMyBookmarks handles GET /api/users/me/bookmarks. It lists the caller's
// own bookmarks, public and private, optionally narrowed by ?category= and ?q=.
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	views, err := s.bookmarkService.ListOwn(c.Context(), currentUserID(c), filterOptionsFromQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarks": views})
}

// GetMyFavorites handles GET /api/users/me/favorites
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	views, err := s.bookmarkService.ListFavorites(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarks": views})
}

// GetMyStats handles GET /api/users/me/stats
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	stats, err := s.bookmarkService.Stats(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
