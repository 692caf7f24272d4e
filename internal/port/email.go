package port

import "context"

// EmailSender defines the contract for sending account emails.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}
