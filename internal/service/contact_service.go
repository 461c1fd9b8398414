package service

import (
	"context"
	"strings"

	"writoria/internal/contact"
	"writoria/internal/models"
	"writoria/internal/validation"
)

// ContactRelay is the outbound side of the contact form. Satisfied by
// *contact.Client.
type ContactRelay interface {
	Submit(ctx context.Context, sub contact.Submission) error
}

type ContactService struct {
	relay ContactRelay
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func NewContactService(relay ContactRelay) *ContactService {
	return &ContactService{relay: relay}
}

// Submit validates the form and relays it upstream. Nothing is stored.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Message) == "" {
		return models.NewValidationError("Please fill in all required fields")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}
	subject := in.Subject
	if subject == "" {
		subject = "No Subject"
	}
	return s.relay.Submit(ctx, contact.Submission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: subject,
		Message: in.Message,
	})
}
