package domain

import "context"

// Mailer sends a single email. Implementations may use SES or a no-op sender.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailService sends the creation-confirmation emails dispatched after
// conference and session writes.
type EmailService interface {
	SendConferenceConfirmation(ctx context.Context, to, conferenceInfo string) error
	SendSessionConfirmation(ctx context.Context, to, sessionInfo string) error
}
