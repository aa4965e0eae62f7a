package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

func TestConfigStoreReplace(t *testing.T) {
	store := NewConfigStore(weekConfig())

	next := weekConfig()
	next.EmailDays = []time.Weekday{time.Friday}
	next.EmailType = pickup.EmailTypeAll
	require.NoError(t, store.Replace(next))

	got := store.Current()
	assert.Equal(t, []time.Weekday{time.Friday}, got.EmailDays)
	assert.Equal(t, pickup.EmailTypeAll, got.EmailType)
}

func TestConfigStoreReplaceRejectsInvalid(t *testing.T) {
	store := NewConfigStore(weekConfig())

	bad := weekConfig()
	bad.Recipients = nil
	err := store.Replace(bad)
	require.Error(t, err)

	// The stored value is untouched.
	assert.Equal(t, []string{"team@example.com"}, store.Current().Recipients)
}

func TestConfigStoreSnapshotsDoNotAlias(t *testing.T) {
	store := NewConfigStore(weekConfig())

	snap := store.Current()
	snap.EmailDays[0] = time.Saturday
	snap.Recipients[0] = "tampered@example.com"

	got := store.Current()
	assert.Equal(t, time.Monday, got.EmailDays[0])
	assert.Equal(t, "team@example.com", got.Recipients[0])
}
