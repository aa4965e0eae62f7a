package notifier

import (
	"fmt"
	"time"

	"github.com/osteele/liquid"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// Templates renders the reminder and announcement email bodies with the
// Liquid template language. Templates are parsed once at construction.
type Templates struct {
	engine       *liquid.Engine
	reminderHTML *liquid.Template
	reminderText *liquid.Template
	messageHTML  *liquid.Template
}

// NewTemplates creates the template set with custom filters registered.
func NewTemplates() (*Templates, error) {
	engine := liquid.NewEngine()

	// Plural suffix: {{ count | plural }} renders "s" unless count is 1.
	engine.RegisterFilter("plural", func(v int) string {
		if v == 1 {
			return ""
		}
		return "s"
	})

	t := &Templates{engine: engine}

	var err error
	if t.reminderHTML, err = engine.ParseString(reminderHTMLTemplate); err != nil {
		return nil, fmt.Errorf("parsing reminder HTML template: %w", err)
	}
	if t.reminderText, err = engine.ParseString(reminderTextTemplate); err != nil {
		return nil, fmt.Errorf("parsing reminder text template: %w", err)
	}
	if t.messageHTML, err = engine.ParseString(messageHTMLTemplate); err != nil {
		return nil, fmt.Errorf("parsing message HTML template: %w", err)
	}
	return t, nil
}

// RenderReminder produces the subject, plain and HTML bodies for a pickup
// reminder. Each location row renders urgency from its own DaysUntil; the
// batch lead time only feeds the subject line.
func (t *Templates) RenderReminder(locations []pickup.PickupLocation, leadDays int, now time.Time) (subject, text, html string, err error) {
	rows := make([]map[string]interface{}, 0, len(locations))
	for _, loc := range locations {
		u := loc.Urgency()
		rows = append(rows, map[string]interface{}{
			"name":          loc.Name,
			"address":       loc.Address,
			"time":          loc.Time,
			"days":          loc.DaysUntil,
			"urgency":       u.Label(),
			"urgency_color": u.Color(),
			"urgency_bg":    u.Background(),
			"row_bg":        u.RowBackground(),
		})
	}

	bindings := map[string]interface{}{
		"locations": rows,
		"count":     len(locations),
		"lead_days": leadDays,
		"generated": now.Format("Jan 2, 2006 3:04 PM"),
	}

	subject = fmt.Sprintf("FEDS Pickup Schedule - %d location%s (%s)",
		len(locations), pluralSuffix(len(locations)), pickup.ClassifyUrgency(leadDays).Label())

	if text, err = t.reminderText.RenderString(bindings); err != nil {
		return "", "", "", fmt.Errorf("rendering reminder text: %w", err)
	}
	if html, err = t.reminderHTML.RenderString(bindings); err != nil {
		return "", "", "", fmt.Errorf("rendering reminder HTML: %w", err)
	}
	return subject, text, html, nil
}

// RenderCustomMessage produces the HTML body for a team announcement. The
// plain body is the message itself.
func (t *Templates) RenderCustomMessage(subject, message string, now time.Time) (string, error) {
	html, err := t.messageHTML.RenderString(map[string]interface{}{
		"subject":   subject,
		"message":   message,
		"generated": now.Format("Jan 2, 2006 3:04 PM"),
	})
	if err != nil {
		return "", fmt.Errorf("rendering message HTML: %w", err)
	}
	return html, nil
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

const reminderTextTemplate = `FEDS Pickup Schedule

{{ count }} location{{ count | plural }} scheduled for pickup.
{% for loc in locations %}
- {{ loc.name }} at {{ loc.address }} ({{ loc.time }}) [{{ loc.urgency }}, {{ loc.days }} day{{ loc.days | plural }} left]
{%- endfor %}

Each location has its own deadline. Prioritize URGENT and DUE SOON pickups.
`

const reminderHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>FEDS Pickup Schedule</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", system-ui, sans-serif; margin: 0; padding: 20px; background: #fafafa; color: #1a1a1a; line-height: 1.5; }
    .container { max-width: 800px; margin: 0 auto; background: white; border: 1px solid #e5e5e5; border-radius: 8px; }
    .header { padding: 24px; border-bottom: 1px solid #e5e5e5; background: #f8f9fa; }
    .content { padding: 24px; }
    table { width: 100%; border-collapse: collapse; margin: 16px 0; }
    th { background: #f8f9fa; padding: 12px 16px; text-align: left; font-weight: 600; color: #374151; border-bottom: 2px solid #e5e5e5; font-size: 13px; text-transform: uppercase; letter-spacing: 0.5px; }
    .footer { padding: 16px 24px; background: #f8f9fa; border-top: 1px solid #e5e5e5; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 style="margin: 0 0 8px 0; font-size: 24px; font-weight: 700; color: #1a1a1a;">FEDS Pickup Schedule</h1>
      <p style="margin: 0; color: #6b7280; font-size: 14px;">{{ count }} location{{ count | plural }} scheduled for pickup</p>
    </div>

    <div class="content">
      <p style="margin: 0 0 20px 0; color: #374151;">Team pickup assignments with individual deadlines:</p>

      <table>
        <thead>
          <tr>
            <th>Location Name</th>
            <th>Address</th>
            <th>Time</th>
            <th>Status</th>
          </tr>
        </thead>
        <tbody>
          {%- for loc in locations %}
          <tr style="background: {{ loc.row_bg }};">
            <td style="padding: 16px; border-bottom: 1px solid #e5e5e5; font-weight: 600; color: #1a1a1a;">{{ loc.name | escape }}</td>
            <td style="padding: 16px; border-bottom: 1px solid #e5e5e5; color: #4a4a4a;">{{ loc.address | escape }}</td>
            <td style="padding: 16px; border-bottom: 1px solid #e5e5e5; color: #4a4a4a;">{{ loc.time }}</td>
            <td style="padding: 16px; border-bottom: 1px solid #e5e5e5;">
              <span style="padding: 4px 8px; border-radius: 4px; font-size: 11px; font-weight: 600; text-transform: uppercase; letter-spacing: 0.5px; background: {{ loc.urgency_bg }}; color: {{ loc.urgency_color }};">{{ loc.urgency }}</span>
              <div style="font-size: 12px; color: #6b7280; margin-top: 2px;">{{ loc.days }} day{{ loc.days | plural }} left</div>
            </td>
          </tr>
          {%- endfor %}
        </tbody>
      </table>

      <div style="margin-top: 24px; padding: 16px; background: #f8f9fa; border-radius: 6px; border-left: 4px solid #374151;">
        <p style="margin: 0; font-size: 14px; color: #374151; font-weight: 500;">
          <strong>Instructions:</strong> Each location has its own deadline. Prioritize URGENT and DUE SOON pickups.
        </p>
      </div>
    </div>

    <div class="footer">
      <p style="margin: 0;">FEDS Pickup Scheduler &bull; <span style="font-family: monospace;">{{ generated }}</span></p>
    </div>
  </div>
</body>
</html>
`

const messageHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ subject | escape }}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", system-ui, sans-serif; margin: 0; padding: 20px; background: #fafafa; color: #1a1a1a; line-height: 1.6; }
    .container { max-width: 600px; margin: 0 auto; background: white; border: 1px solid #e5e5e5; border-radius: 8px; }
    .header { padding: 24px; border-bottom: 1px solid #e5e5e5; background: #f8f9fa; }
    .content { padding: 24px; }
    .footer { padding: 16px 24px; background: #f8f9fa; border-top: 1px solid #e5e5e5; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 style="margin: 0 0 8px 0; font-size: 24px; font-weight: 700; color: #1a1a1a;">{{ subject | escape }}</h1>
      <p style="margin: 0; color: #6b7280; font-size: 14px;">FEDS Team Communication</p>
    </div>

    <div class="content">
      <div style="padding: 20px; background: #f8f9fa; border-radius: 6px; border-left: 4px solid #374151; margin-bottom: 20px;">
        {{ message | escape | newline_to_br }}
      </div>
    </div>

    <div class="footer">
      <p style="margin: 0;">Sent via FEDS Pickup Scheduler &bull; <span style="font-family: monospace;">{{ generated }}</span></p>
    </div>
  </div>
</body>
</html>
`
