// Package notifier delivers reminder and announcement email. Senders are
// split into individual files:
//   - ses.go:     AWS SES v2
//   - mailgun.go: Mailgun Messages API
//   - log.go:     log-only sender for development
//
// The mailer renders the message bodies; senders do transport only and
// never alter content.
package notifier

import "context"

// Message is one fully rendered email ready for transport.
type Message struct {
	From     Address
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Address is a display name plus email address.
type Address struct {
	Name  string
	Email string
}

// Sender delivers a rendered message to its recipients. A send either
// fully succeeds or the whole invocation reports failure; there is no
// partial-dispatch state.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
