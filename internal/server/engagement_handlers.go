package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleVote handles POST /api/posts/:slug/vote
func (s *Server) ToggleVote(c *fiber.Ctx) error {
	result, err := s.engagementService.ToggleVote(c.UserContext(), currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ToggleBookmark handles POST /api/posts/:slug/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	bookmarked, err := s.engagementService.ToggleBookmark(c.UserContext(), currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"is_bookmarked": bookmarked})
}
