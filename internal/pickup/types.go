// Package pickup contains the core domain logic for the pickup scheduler:
// submission records, week-window filtering, urgency classification and the
// display formatting consumed by the reminder mailer.
package pickup

import (
	"fmt"
	"strings"
	"time"
)

// Submission is one accepted pickup request from the public form.
type Submission struct {
	PickupDate time.Time
	Address    string
	// Row is the source row number in the backing table, kept for
	// diagnostics only. It never participates in filtering or formatting.
	Row int
}

// PickupLocation is the display-ready projection of a Submission. Instances
// are built fresh on every formatting pass and discarded after dispatch.
type PickupLocation struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Time      string `json:"time"`
	DaysUntil int    `json:"days_until"`
}

// Urgency returns the urgency tier for this location's own lead time.
func (p PickupLocation) Urgency() Urgency {
	return ClassifyUrgency(p.DaysUntil)
}

// Urgency is the three-tier classification derived from a lead time.
type Urgency int

const (
	UrgencyUrgent Urgency = iota
	UrgencyDueSoon
	UrgencyScheduled
)

// ClassifyUrgency maps an integer lead time in days to an urgency tier.
// This is the only branching rule in the formatting path and is shared by
// item-level and batch-level callers.
func ClassifyUrgency(days int) Urgency {
	switch {
	case days <= 1:
		return UrgencyUrgent
	case days <= 3:
		return UrgencyDueSoon
	default:
		return UrgencyScheduled
	}
}

// Label returns the display text for the tier.
func (u Urgency) Label() string {
	switch u {
	case UrgencyUrgent:
		return "URGENT"
	case UrgencyDueSoon:
		return "DUE SOON"
	default:
		return "SCHEDULED"
	}
}

// Color returns the foreground color used for the tier badge.
func (u Urgency) Color() string {
	switch u {
	case UrgencyUrgent:
		return "#dc2626"
	case UrgencyDueSoon:
		return "#d97706"
	default:
		return "#0369a1"
	}
}

// Background returns the badge background color for the tier.
func (u Urgency) Background() string {
	switch u {
	case UrgencyUrgent:
		return "#fee2e2"
	case UrgencyDueSoon:
		return "#fef3c7"
	default:
		return "#f0f9ff"
	}
}

// RowBackground returns the table row background for the tier.
func (u Urgency) RowBackground() string {
	switch u {
	case UrgencyUrgent:
		return "#fef2f2"
	case UrgencyDueSoon:
		return "#fffbeb"
	default:
		return "white"
	}
}

// EmailType selects which filter path an automated send uses.
type EmailType string

const (
	// EmailTypeWeek sends only submissions in the current Monday-Sunday week.
	EmailTypeWeek EmailType = "week"
	// EmailTypeAll sends every submission regardless of date.
	EmailTypeAll EmailType = "all"
)

// ParseEmailType validates a raw email type string. Unknown values are an
// error rather than a silent fallthrough.
func ParseEmailType(s string) (EmailType, error) {
	switch EmailType(strings.ToLower(strings.TrimSpace(s))) {
	case EmailTypeWeek:
		return EmailTypeWeek, nil
	case EmailTypeAll:
		return EmailTypeAll, nil
	default:
		return "", fmt.Errorf("invalid email type %q (want %q or %q)", s, EmailTypeWeek, EmailTypeAll)
	}
}

// ScheduleConfig controls the automated daily send. It is read as a whole
// value at the start of each invocation and replaced wholesale by the admin
// update; there is no in-place mutation.
type ScheduleConfig struct {
	// EmailDays are the weekdays on which the automated job fires.
	EmailDays []time.Weekday
	// Recipients receive the automated reminder.
	Recipients []string
	// EmailType picks the week or all-dates filter path.
	EmailType EmailType
	// Enabled is the kill switch for automated sends.
	Enabled bool
}

// SendsOn reports whether day is one of the configured email days.
func (c ScheduleConfig) SendsOn(day time.Weekday) bool {
	for _, d := range c.EmailDays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the config is usable for automated sends.
func (c ScheduleConfig) Validate() error {
	if _, err := ParseEmailType(string(c.EmailType)); err != nil {
		return err
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("schedule config has no recipients")
	}
	for _, d := range c.EmailDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d in email days", d)
		}
	}
	return nil
}
