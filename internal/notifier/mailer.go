package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// Mailer composes reminder and announcement email and hands it to the
// configured sender. It owns visual formatting only; urgency classification
// comes from the pickup package and is never altered here.
type Mailer struct {
	sender    Sender
	templates *Templates
	from      Address
}

// NewMailer creates a mailer over the given sender.
func NewMailer(sender Sender, from Address) (*Mailer, error) {
	templates, err := NewTemplates()
	if err != nil {
		return nil, err
	}
	return &Mailer{sender: sender, templates: templates, from: from}, nil
}

// SendReminders renders and dispatches the pickup schedule to all
// recipients in one message. leadDays is the batch-level lead time used
// for the subject line; each table row renders urgency from its own
// per-item DaysUntil.
func (m *Mailer) SendReminders(ctx context.Context, recipients []string, locations []pickup.PickupLocation, leadDays int) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	subject, text, html, err := m.templates.RenderReminder(locations, leadDays, time.Now())
	if err != nil {
		return err
	}

	err = m.sender.Send(ctx, Message{
		From:     m.from,
		To:       recipients,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
	if err != nil {
		return fmt.Errorf("sending reminder: %w", err)
	}

	log.Printf("[Mailer] Pickup schedule sent to %d recipient(s) for %d location(s)", len(recipients), len(locations))
	return nil
}

// SendCustomMessage renders and dispatches a plain team announcement.
func (m *Mailer) SendCustomMessage(ctx context.Context, recipients []string, subject, message string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}
	if subject == "" {
		subject = "FEDS Team Message"
	}

	html, err := m.templates.RenderCustomMessage(subject, message, time.Now())
	if err != nil {
		return err
	}

	err = m.sender.Send(ctx, Message{
		From:     m.from,
		To:       recipients,
		Subject:  subject,
		TextBody: message,
		HTMLBody: html,
	})
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	log.Printf("[Mailer] Custom message sent to %d recipient(s)", len(recipients))
	return nil
}
