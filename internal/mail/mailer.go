package mail

import (
	"context"
	"log"
)

// Mailer delivers a message to a user. Resolving the user ID to an address
// and the actual transport are external concerns; implementations may be
// slow (multiple seconds) and may be retried, so sends must be safe to
// repeat.
type Mailer interface {
	Send(ctx context.Context, userID, subject, body string) error
}

// LogMailer writes the message to the process log instead of sending it.
// It stands in wherever no real transport is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, userID, subject, body string) error {
	log.Printf("mail to user %s: %s\n%s", userID, subject, body)
	return nil
}
