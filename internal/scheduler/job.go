package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// Outcome classifies how a trigger invocation ended.
type Outcome string

const (
	OutcomeSent              Outcome = "sent"
	OutcomeDisabled          Outcome = "disabled"
	OutcomeNotSendDay        Outcome = "not_send_day"
	OutcomeNoSubmissions     Outcome = "no_submissions"
	OutcomeAlreadyDispatched Outcome = "already_dispatched"
	OutcomeFailed            Outcome = "failed"
)

// Result is the structured outcome of one trigger invocation. Errors from
// the job body and its collaborators are folded into a failed Result; they
// never cross the trigger boundary.
type Result struct {
	InvocationID uuid.UUID        `json:"invocation_id"`
	Outcome      Outcome          `json:"outcome"`
	Message      string           `json:"message"`
	EmailType    pickup.EmailType `json:"email_type,omitempty"`
	Locations    int              `json:"locations"`
	Recipients   []string         `json:"recipients,omitempty"`
	RanAt        time.Time        `json:"ran_at"`
}

// Success reports whether a reminder was dispatched.
func (r Result) Success() bool { return r.Outcome == OutcomeSent }

// SubmissionSource is the read side of the row store the job consumes.
type SubmissionSource interface {
	ListSubmissions(ctx context.Context) ([]pickup.Submission, error)
}

// ReminderSender dispatches a formatted batch. Satisfied by
// notifier.Mailer.
type ReminderSender interface {
	SendReminders(ctx context.Context, recipients []string, locations []pickup.PickupLocation, leadDays int) error
}

// Job evaluates the daily trigger and dispatches reminders.
type Job struct {
	configs *ConfigStore
	source  SubmissionSource
	sender  ReminderSender
	ledger  *DispatchLedger // nil disables same-day dedupe
}

// NewJob wires a job over its collaborators. ledger may be nil.
func NewJob(configs *ConfigStore, source SubmissionSource, sender ReminderSender, ledger *DispatchLedger) *Job {
	return &Job{configs: configs, source: source, sender: sender, ledger: ledger}
}

// Run is the automated daily trigger. One synchronous pass: check the kill
// switch, check the send day, then fetch, filter, format and dispatch.
// now is the evaluation instant for every date-window computation.
func (j *Job) Run(ctx context.Context, now time.Time) (res Result) {
	res = Result{InvocationID: uuid.New(), RanAt: now}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Message = fmt.Sprintf("panic: %v", r)
			log.Printf("[Scheduler] Invocation %s panicked: %v", res.InvocationID, r)
		}
	}()

	cfg := j.configs.Current()
	day := now.Weekday()
	log.Printf("[Scheduler] Daily trigger on %s (invocation %s)", day, res.InvocationID)

	if !cfg.Enabled {
		res.Outcome = OutcomeDisabled
		res.Message = "scheduled sends are disabled"
		return res
	}
	if !cfg.SendsOn(day) {
		res.Outcome = OutcomeNotSendDay
		res.Message = fmt.Sprintf("not a send day (%s)", day)
		return res
	}

	if j.ledger != nil {
		acquired, err := j.ledger.TryAcquire(ctx, now, res.InvocationID)
		if err != nil {
			// The ledger is an optional guard; a broken Redis must not
			// block the reminder itself.
			log.Printf("[Scheduler] Dispatch ledger unavailable: %v", err)
		} else if !acquired {
			res.Outcome = OutcomeAlreadyDispatched
			res.Message = "reminder already dispatched today"
			return res
		}
	}

	return j.dispatch(ctx, res, now, cfg.EmailType, cfg.Recipients)
}

// RunManual triggers a send outside the automated schedule. It bypasses
// the kill switch, the send-day check and the dispatch ledger. recipients
// overrides the configured list when non-empty.
func (j *Job) RunManual(ctx context.Context, now time.Time, emailType pickup.EmailType, recipients []string) (res Result) {
	res = Result{InvocationID: uuid.New(), RanAt: now}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Message = fmt.Sprintf("panic: %v", r)
			log.Printf("[Scheduler] Invocation %s panicked: %v", res.InvocationID, r)
		}
	}()

	if len(recipients) == 0 {
		recipients = j.configs.Current().Recipients
	}
	log.Printf("[Scheduler] Manual %s trigger (invocation %s)", emailType, res.InvocationID)
	return j.dispatch(ctx, res, now, emailType, recipients)
}

// dispatch runs the shared fetch/filter/format/send path for both trigger
// kinds.
func (j *Job) dispatch(ctx context.Context, res Result, now time.Time, emailType pickup.EmailType, recipients []string) Result {
	res.EmailType = emailType
	res.Recipients = recipients

	subs, err := j.source.ListSubmissions(ctx)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("fetching submissions: %v", err)
		return res
	}

	var batch []pickup.Submission
	switch emailType {
	case pickup.EmailTypeWeek:
		batch = pickup.FilterCurrentWeek(subs, now)
		if len(batch) == 0 {
			res.Outcome = OutcomeNoSubmissions
			res.Message = "no submissions this week"
			return res
		}
	case pickup.EmailTypeAll:
		batch = pickup.SelectAll(subs)
		if len(batch) == 0 {
			res.Outcome = OutcomeNoSubmissions
			res.Message = "no submissions found"
			return res
		}
	default:
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("unknown email type %q", emailType)
		return res
	}

	locations := pickup.ToPickupLocations(batch, now)

	// Batch lead time feeds the subject line only; rows use their own
	// per-item values. Floor of 1 keeps the subject out of negative days.
	leadDays := pickup.EarliestUpcomingLeadDays(batch, now)
	if leadDays < 1 {
		leadDays = 1
	}

	if err := j.sender.SendReminders(ctx, recipients, locations, leadDays); err != nil {
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("dispatching reminder: %v", err)
		return res
	}

	res.Outcome = OutcomeSent
	res.Locations = len(locations)
	res.Message = fmt.Sprintf("sent reminder for %d location(s) to %d recipient(s)", len(locations), len(recipients))
	log.Printf("[Scheduler] %s", res.Message)
	return res
}

// Preview reports what the automated trigger would do at the given
// instant, without fetching or sending anything.
func (j *Job) Preview(now time.Time) map[string]interface{} {
	cfg := j.configs.Current()
	day := now.Weekday()
	wouldSend := cfg.Enabled && cfg.SendsOn(day)

	days := make([]string, 0, len(cfg.EmailDays))
	for _, d := range cfg.EmailDays {
		days = append(days, d.String())
	}

	return map[string]interface{}{
		"today":             day.String(),
		"would_send":        wouldSend,
		"enabled":           cfg.Enabled,
		"email_days":        days,
		"email_type":        cfg.EmailType,
		"recipients":        cfg.Recipients,
		"days_until_monday": pickup.DaysUntilNextMonday(now),
	}
}
