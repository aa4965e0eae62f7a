package notifier

import (
	"context"

	"github.com/feds201/pickup-scheduler/internal/pkg/logger"
)

// LogSender records sends instead of delivering them. Used in development
// and as the fallback when no provider is configured.
type LogSender struct{}

// NewLogSender creates a log-only sender.
func NewLogSender() *LogSender { return &LogSender{} }

// Send logs the message metadata and succeeds.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	for _, to := range msg.To {
		logger.Info("email send (log only)",
			"recipient", to,
			"subject", msg.Subject,
			"html_bytes", len(msg.HTMLBody),
		)
	}
	return nil
}
