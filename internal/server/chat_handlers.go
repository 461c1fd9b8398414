package server

import (
	"writoria/internal/models"
	"writoria/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendChatMessage handles POST /api/chat
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	var req struct {
		Message     string `json:"message"`
		PageContent string `json:"page_content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	response, err := s.chatService.SendMessage(c.UserContext(), service.SendMessageInput{
		UserID:      currentUserID(c),
		Message:     req.Message,
		PageContent: req.PageContent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"response": response})
}

// GetChatHistory handles GET /api/chat/history
func (s *Server) GetChatHistory(c *fiber.Ctx) error {
	messages, err := s.chatService.History(c.UserContext(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}
