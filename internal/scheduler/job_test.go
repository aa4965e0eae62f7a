package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

type fakeSource struct {
	subs []pickup.Submission
	err  error
}

func (f *fakeSource) ListSubmissions(_ context.Context) ([]pickup.Submission, error) {
	return f.subs, f.err
}

type fakeSender struct {
	calls      int
	recipients []string
	locations  []pickup.PickupLocation
	leadDays   int
	err        error
}

func (f *fakeSender) SendReminders(_ context.Context, recipients []string, locations []pickup.PickupLocation, leadDays int) error {
	f.calls++
	f.recipients = recipients
	f.locations = locations
	f.leadDays = leadDays
	return f.err
}

func weekConfig() pickup.ScheduleConfig {
	return pickup.ScheduleConfig{
		EmailDays:  []time.Weekday{time.Monday, time.Thursday},
		Recipients: []string{"team@example.com"},
		EmailType:  pickup.EmailTypeWeek,
		Enabled:    true,
	}
}

// Wednesday 2024-06-12 at 6 AM, mid-week so both sides of the window exist.
var wednesday = time.Date(2024, 6, 12, 6, 0, 0, 0, time.UTC)

func TestRunDisabledSendsNothing(t *testing.T) {
	cfg := weekConfig()
	cfg.Enabled = false
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), &fakeSource{}, sender, nil)

	// Thursday is a configured send day; disabled must still win.
	res := job.Run(context.Background(), time.Date(2024, 6, 13, 6, 0, 0, 0, time.UTC))

	assert.Equal(t, OutcomeDisabled, res.Outcome)
	assert.False(t, res.Success())
	assert.Equal(t, 0, sender.calls)
}

func TestRunSkipsNonSendDay(t *testing.T) {
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(weekConfig()), &fakeSource{}, sender, nil)

	// Tuesday 2024-06-11 is not in {Monday, Thursday}.
	res := job.Run(context.Background(), time.Date(2024, 6, 11, 6, 0, 0, 0, time.UTC))

	assert.Equal(t, OutcomeNotSendDay, res.Outcome)
	assert.Equal(t, 0, sender.calls)
}

func TestRunNoSubmissionsThisWeek(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Address: "1 Old Rd", Row: 2},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	assert.Equal(t, OutcomeNoSubmissions, res.Outcome)
	assert.Equal(t, "no submissions this week", res.Message)
	assert.Equal(t, 0, sender.calls)
}

func TestRunSendsWeekBatch(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Address: "123 Main St, Rochester", Row: 2},
		{PickupDate: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), Address: "456 Oak Ave, Troy", Row: 3},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	require.Equal(t, OutcomeSent, res.Outcome)
	assert.True(t, res.Success())
	assert.Equal(t, 1, res.Locations)
	assert.Equal(t, 1, sender.calls)
	require.Len(t, sender.locations, 1)
	assert.Equal(t, "123 Main St", sender.locations[0].Name)
	assert.Equal(t, []string{"team@example.com"}, sender.recipients)
	// June 14 is two days out from the 12th.
	assert.Equal(t, 2, sender.leadDays)
}

func TestRunAllTypeIgnoresWeekWindow(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	cfg.EmailType = pickup.EmailTypeAll
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Address: "1 Old Rd", Row: 2},
		{PickupDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), Address: "2 New Rd", Row: 3},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	require.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, 2, res.Locations)
	assert.Len(t, sender.locations, 2)
}

func TestRunLeadDaysFlooredAtOne(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	cfg.EmailType = pickup.EmailTypeAll
	// Every pickup already passed, so no upcoming lead time exists and the
	// derived value must not go below 1.
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Address: "1 Past Rd", Row: 2},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	require.Equal(t, OutcomeSent, res.Outcome)
	assert.GreaterOrEqual(t, sender.leadDays, 1)
}

func TestRunSourceFailure(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	source := &fakeSource{err: errors.New("connection refused")}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Contains(t, res.Message, "fetching submissions")
	assert.Equal(t, 0, sender.calls)
}

func TestRunSenderFailure(t *testing.T) {
	cfg := weekConfig()
	cfg.EmailDays = []time.Weekday{time.Wednesday}
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: wednesday, Address: "123 Main St", Row: 2},
	}}
	sender := &fakeSender{err: errors.New("smtp unavailable")}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.Run(context.Background(), wednesday)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Contains(t, res.Message, "dispatching reminder")
}

func TestRunManualBypassesScheduleChecks(t *testing.T) {
	cfg := weekConfig()
	cfg.Enabled = false
	cfg.EmailDays = nil
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Address: "123 Main St", Row: 2},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(cfg), source, sender, nil)

	res := job.RunManual(context.Background(), wednesday, pickup.EmailTypeWeek, []string{"coach@example.com"})

	require.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, []string{"coach@example.com"}, sender.recipients)
}

func TestRunManualDefaultsToConfiguredRecipients(t *testing.T) {
	source := &fakeSource{subs: []pickup.Submission{
		{PickupDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Address: "123 Main St", Row: 2},
	}}
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(weekConfig()), source, sender, nil)

	res := job.RunManual(context.Background(), wednesday, pickup.EmailTypeWeek, nil)

	require.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, []string{"team@example.com"}, sender.recipients)
}

func TestRunManualRejectsUnknownEmailType(t *testing.T) {
	sender := &fakeSender{}
	job := NewJob(NewConfigStore(weekConfig()), &fakeSource{}, sender, nil)

	res := job.RunManual(context.Background(), wednesday, pickup.EmailType("monthly"), nil)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Contains(t, res.Message, "unknown email type")
	assert.Equal(t, 0, sender.calls)
}

func TestPreview(t *testing.T) {
	job := NewJob(NewConfigStore(weekConfig()), &fakeSource{}, &fakeSender{}, nil)

	// Thursday is a send day.
	preview := job.Preview(time.Date(2024, 6, 13, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, true, preview["would_send"])
	assert.Equal(t, "Thursday", preview["today"])
	assert.Equal(t, []string{"Monday", "Thursday"}, preview["email_days"])
	assert.Equal(t, 4, preview["days_until_monday"])

	// Tuesday is not.
	preview = job.Preview(time.Date(2024, 6, 11, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, false, preview["would_send"])
}
