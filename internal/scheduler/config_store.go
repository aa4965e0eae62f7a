// Package scheduler runs the daily reminder trigger: it evaluates the
// schedule config, selects and formats submissions, and dispatches the
// reminder email.
package scheduler

import (
	"sync"
	"time"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// ConfigStore holds the current schedule configuration. Reads return a
// whole-value snapshot and updates replace the value wholesale, so an
// in-flight invocation never observes a partial update.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg pickup.ScheduleConfig
}

// NewConfigStore creates a store seeded with the initial config.
func NewConfigStore(initial pickup.ScheduleConfig) *ConfigStore {
	return &ConfigStore{cfg: initial}
}

// Current returns a snapshot of the schedule config.
func (s *ConfigStore) Current() pickup.ScheduleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfig(s.cfg)
}

// Replace swaps in a new config after validating it. The new value takes
// effect for invocations starting after Replace returns.
func (s *ConfigStore) Replace(cfg pickup.ScheduleConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cloneConfig(cfg)
	s.mu.Unlock()
	return nil
}

// cloneConfig copies the slices so callers cannot alias the stored value.
func cloneConfig(cfg pickup.ScheduleConfig) pickup.ScheduleConfig {
	out := cfg
	out.EmailDays = append([]time.Weekday(nil), cfg.EmailDays...)
	out.Recipients = append([]string(nil), cfg.Recipients...)
	return out
}
