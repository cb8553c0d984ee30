package services

import (
	"context"
	"fmt"

	"participationletters/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendLetterReady tells a participant where to download their letter, using the "letter_ready" template.
func (s *emailService) SendLetterReady(ctx context.Context, data *domain.LetterReadyEmailData) error {
	if data == nil {
		return fmt.Errorf("letter ready data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("%w: recipient email is empty", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render("letter_ready", data)
	if err != nil {
		return fmt.Errorf("failed to render letter_ready template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send letter ready email: %w", err)
	}
	return nil
}
