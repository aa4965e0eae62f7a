// Package store provides the row store backing the pickup scheduler: one
// table of available pickup slots and one append-only table of accepted
// submissions.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// ErrTableNotFound is returned when a backing table is absent. It is fatal
// to the current invocation but never to the process.
var ErrTableNotFound = errors.New("backing table not found")

// Slot is one available pickup date/time window. Any field may be nil when
// the source row left it blank.
type Slot struct {
	Date      *time.Time
	StartTime *time.Time
	EndTime   *time.Time
}

// Store is the read/append contract over the two backing tables.
type Store interface {
	// ListSlots returns every configured pickup slot, empty when none.
	ListSlots(ctx context.Context) ([]Slot, error)
	// ListSubmissions returns all accepted submissions. Rows with an
	// unparseable pickup date or an empty address are dropped here and
	// never reach filtering.
	ListSubmissions(ctx context.Context) ([]pickup.Submission, error)
	// AppendSubmission appends one accepted submission row.
	AppendSubmission(ctx context.Context, pickupDate time.Time, address string) error
}
