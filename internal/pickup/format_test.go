package pickup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	// Full table over [-2, 6]: overdue and next-day are URGENT, two to
	// three days out is DUE SOON, four or more is SCHEDULED.
	tests := []struct {
		days int
		want Urgency
	}{
		{-2, UrgencyUrgent},
		{-1, UrgencyUrgent},
		{0, UrgencyUrgent},
		{1, UrgencyUrgent},
		{2, UrgencyDueSoon},
		{3, UrgencyDueSoon},
		{4, UrgencyScheduled},
		{5, UrgencyScheduled},
		{6, UrgencyScheduled},
	}

	for _, tt := range tests {
		if got := ClassifyUrgency(tt.days); got != tt.want {
			t.Errorf("ClassifyUrgency(%d) = %s, want %s", tt.days, got.Label(), tt.want.Label())
		}
	}
}

func TestUrgencyLabels(t *testing.T) {
	assert.Equal(t, "URGENT", UrgencyUrgent.Label())
	assert.Equal(t, "DUE SOON", UrgencyDueSoon.Label())
	assert.Equal(t, "SCHEDULED", UrgencyScheduled.Label())
}

func TestToPickupLocations(t *testing.T) {
	today := date(2024, 6, 12)

	subs := []Submission{
		{PickupDate: date(2024, 6, 13), Address: "123 Main St, Springfield, MI"}, // Thursday
		{PickupDate: date(2024, 6, 15), Address: "456 Oak Ave"},                  // Saturday
		{PickupDate: date(2024, 6, 10), Address: ",no name segment"},             // Monday, past
	}

	got := ToPickupLocations(subs, today)
	if !assert.Len(t, got, len(subs)) {
		return
	}

	assert.Equal(t, "123 Main St", got[0].Name)
	assert.Equal(t, "123 Main St, Springfield, MI", got[0].Address)
	assert.Equal(t, "2:00 PM", got[0].Time)
	assert.Equal(t, 1, got[0].DaysUntil)
	assert.Equal(t, UrgencyUrgent, got[0].Urgency())

	// No comma: the whole address is the name.
	assert.Equal(t, "456 Oak Ave", got[1].Name)
	assert.Equal(t, "1:00 PM", got[1].Time)
	assert.Equal(t, 3, got[1].DaysUntil)
	assert.Equal(t, UrgencyDueSoon, got[1].Urgency())

	// Empty first segment falls back to a positional label.
	assert.Equal(t, "Pickup Location 3", got[2].Name)
	assert.Equal(t, "9:00 AM", got[2].Time)
	assert.Equal(t, -2, got[2].DaysUntil)
	assert.Equal(t, UrgencyUrgent, got[2].Urgency())
}

func TestToPickupLocationsRoundTrip(t *testing.T) {
	today := date(2024, 6, 12)

	var subs []Submission
	for i := 0; i < 25; i++ {
		subs = append(subs, Submission{
			PickupDate: today.AddDate(0, 0, i%9-2),
			Address:    "addr",
			Row:        i + 2,
		})
	}

	got := ToPickupLocations(subs, today)
	assert.Len(t, got, len(subs))
	for i := range got {
		assert.Equal(t, DaysUntil(subs[i].PickupDate, today), got[i].DaysUntil, "index %d", i)
	}
}

func TestToPickupLocationsEmpty(t *testing.T) {
	got := ToPickupLocations(nil, time.Now())
	assert.Empty(t, got)
}

func TestParseEmailType(t *testing.T) {
	tests := []struct {
		in      string
		want    EmailType
		wantErr bool
	}{
		{"week", EmailTypeWeek, false},
		{"all", EmailTypeAll, false},
		{" WEEK ", EmailTypeWeek, false},
		{"", "", true},
		{"monthly", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEmailType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestScheduleConfigValidate(t *testing.T) {
	valid := ScheduleConfig{
		EmailDays:  []time.Weekday{time.Monday, time.Thursday},
		Recipients: []string{"team@example.com"},
		EmailType:  EmailTypeWeek,
		Enabled:    true,
	}
	assert.NoError(t, valid.Validate())

	noRecipients := valid
	noRecipients.Recipients = nil
	assert.Error(t, noRecipients.Validate())

	badType := valid
	badType.EmailType = "sometimes"
	assert.Error(t, badType.Validate())
}

func TestScheduleConfigSendsOn(t *testing.T) {
	cfg := ScheduleConfig{EmailDays: []time.Weekday{time.Monday, time.Thursday}}
	assert.True(t, cfg.SendsOn(time.Monday))
	assert.True(t, cfg.SendsOn(time.Thursday))
	assert.False(t, cfg.SendsOn(time.Tuesday))
	assert.False(t, cfg.SendsOn(time.Sunday))
}
