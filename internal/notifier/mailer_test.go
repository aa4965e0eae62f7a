package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// captureSender records the last message instead of delivering it.
type captureSender struct {
	last Message
	err  error
}

func (s *captureSender) Send(ctx context.Context, msg Message) error {
	s.last = msg
	return s.err
}

func newTestMailer(t *testing.T, sender Sender) *Mailer {
	t.Helper()
	m, err := NewMailer(sender, Address{Name: "FEDS Pickup Scheduler", Email: "no-reply@example.com"})
	require.NoError(t, err)
	return m
}

func TestSendReminders(t *testing.T) {
	sender := &captureSender{}
	m := newTestMailer(t, sender)

	err := m.SendReminders(context.Background(), []string{"a@example.com", "b@example.com"}, testLocations(), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.last.To)
	assert.Equal(t, "no-reply@example.com", sender.last.From.Email)
	assert.Contains(t, sender.last.Subject, "DUE SOON")
	assert.NotEmpty(t, sender.last.TextBody)
	assert.Contains(t, sender.last.HTMLBody, "<table>")
}

func TestSendRemindersNoRecipients(t *testing.T) {
	m := newTestMailer(t, &captureSender{})
	err := m.SendReminders(context.Background(), nil, testLocations(), 2)
	assert.Error(t, err)
}

func TestSendRemindersSenderFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	m := newTestMailer(t, sender)

	err := m.SendReminders(context.Background(), []string{"a@example.com"}, testLocations(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestSendRemindersEmptyBatchStillRenders(t *testing.T) {
	// The scheduler guards against empty weekly batches; the mailer itself
	// renders an empty table rather than failing.
	sender := &captureSender{}
	m := newTestMailer(t, sender)

	err := m.SendReminders(context.Background(), []string{"a@example.com"}, nil, pickup.DefaultLeadDays)
	require.NoError(t, err)
	assert.Contains(t, sender.last.HTMLBody, "0 locations scheduled for pickup")
}

func TestSendCustomMessage(t *testing.T) {
	sender := &captureSender{}
	m := newTestMailer(t, sender)

	err := m.SendCustomMessage(context.Background(), []string{"team@example.com"}, "", "Meeting moved to 5 PM")
	require.NoError(t, err)

	assert.Equal(t, "FEDS Team Message", sender.last.Subject)
	assert.Equal(t, "Meeting moved to 5 PM", sender.last.TextBody)
	assert.Contains(t, sender.last.HTMLBody, "Meeting moved to 5 PM")
}
