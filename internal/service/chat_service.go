package service

import (
	"context"
	"strings"

	"writoria/internal/chat"
	"writoria/internal/middleware"
	"writoria/internal/models"
	"writoria/internal/repository"
)

type ChatService struct {
	backend  chat.Backend
	chatRepo repository.ChatRepository
}

type SendMessageInput struct {
	UserID      uint
	Message     string
	PageContent string
}

func NewChatService(backend chat.Backend, chatRepo repository.ChatRepository) *ChatService {
	return &ChatService{backend: backend, chatRepo: chatRepo}
}

// SendMessage forwards the message to the configured backend and records
// the exchange. Which backend answered is invisible to the caller.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", models.NewValidationError("Message is required")
	}

	response, err := s.backend.Respond(ctx, in.Message, in.PageContent)
	if err != nil {
		return "", err
	}

	record := &models.ChatMessage{
		UserID:   in.UserID,
		Message:  in.Message,
		Response: response,
	}
	// The reply already exists; losing the log row is not worth failing
	// the request over.
	if err := s.chatRepo.Create(ctx, record); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to persist chat exchange",
			"error", err, "backend", s.backend.Name())
	}
	return response, nil
}

// History returns the caller's past exchanges, newest first.
func (s *ChatService) History(ctx context.Context, userID uint, page int) ([]*models.ChatMessage, error) {
	if page < 1 {
		page = 1
	}
	return s.chatRepo.ListByUser(ctx, userID, PageSize, (page-1)*PageSize)
}
