package services

import (
	"context"
	"fmt"
	"log"

	"conferencecentral/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that uses the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) SendConferenceConfirmation(ctx context.Context, to, conferenceInfo string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	body := fmt.Sprintf("Hi, you have created a following conference:\r\n\r\n%s", conferenceInfo)
	if err := s.mailer.Send(to, "You created a new Conference!", "", body); err != nil {
		return fmt.Errorf("failed to send conference confirmation: %w", err)
	}
	log.Printf("[EMAIL] Conference confirmation sent to %s", to)
	return nil
}

func (s *emailService) SendSessionConfirmation(ctx context.Context, to, sessionInfo string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	body := fmt.Sprintf("Hi, you have created a following session:\r\n\r\n%s", sessionInfo)
	if err := s.mailer.Send(to, "You created a new Session!", "", body); err != nil {
		return fmt.Errorf("failed to send session confirmation: %w", err)
	}
	log.Printf("[EMAIL] Session confirmation sent to %s", to)
	return nil
}
