package notifier

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	appconfig "github.com/feds201/pickup-scheduler/internal/config"
	"github.com/feds201/pickup-scheduler/internal/pkg/httpretry"
	"github.com/feds201/pickup-scheduler/internal/pkg/logger"
)

// MailgunSender sends email via the Mailgun Messages API.
type MailgunSender struct {
	apiKey  string
	domain  string
	baseURL string
	client  httpretry.HTTPDoer
}

// NewMailgunSender creates a Mailgun sender targeting the configured domain.
func NewMailgunSender(cfg appconfig.MailgunConfig) *MailgunSender {
	return &MailgunSender{
		apiKey:  cfg.APIKey,
		domain:  cfg.Domain,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 3),
	}
}

// Send delivers the message through Mailgun. All recipients go on a single
// call; the content is identical for each.
func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	if s.apiKey == "" {
		return fmt.Errorf("Mailgun API key not configured")
	}

	form := url.Values{}
	form.Add("from", fmt.Sprintf("%s <%s>", msg.From.Name, msg.From.Email))
	for _, to := range msg.To {
		form.Add("to", to)
	}
	form.Add("subject", msg.Subject)
	form.Add("html", msg.HTMLBody)
	if msg.TextBody != "" {
		form.Add("text", msg.TextBody)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", s.baseURL, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Mailgun error %d: %s", resp.StatusCode, string(body))
	}

	for _, to := range msg.To {
		log.Printf("[Mailgun] Sent to %s", logger.RedactEmail(to))
	}
	return nil
}
