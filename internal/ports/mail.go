package ports

import "context"

// Email is a templated message to a single recipient.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends transactional email. Send returns the provider message id
// when available. Callers on provisioning paths must treat failures as
// warnings, never as a reason to roll back record creation.
type Mailer interface {
	Send(ctx context.Context, email Email) (messageID string, err error)
}
