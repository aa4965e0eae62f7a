package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// dispatchTTL keeps ledger entries long enough to cover clock drift
// between trigger ticks without accumulating keys forever.
const dispatchTTL = 48 * time.Hour

// DispatchLedger records one automated dispatch per calendar day in Redis.
// A second automated trigger on the same day becomes a no-op instead of a
// duplicate email. Manual triggers bypass the ledger entirely.
type DispatchLedger struct {
	client *redis.Client
}

// NewDispatchLedger creates a ledger over the given Redis client.
func NewDispatchLedger(client *redis.Client) *DispatchLedger {
	return &DispatchLedger{client: client}
}

// TryAcquire claims the dispatch slot for the calendar day containing now.
// Returns false when the slot is already claimed.
func (l *DispatchLedger) TryAcquire(ctx context.Context, now time.Time, invocationID uuid.UUID) (bool, error) {
	key := l.key(now)
	ok, err := l.client.SetNX(ctx, key, invocationID.String(), dispatchTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dispatch ledger setnx: %w", err)
	}
	return ok, nil
}

// LastInvocation returns the invocation ID recorded for the calendar day
// containing now, or "" when nothing was dispatched.
func (l *DispatchLedger) LastInvocation(ctx context.Context, now time.Time) (string, error) {
	val, err := l.client.Get(ctx, l.key(now)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("dispatch ledger get: %w", err)
	}
	return val, nil
}

func (l *DispatchLedger) key(now time.Time) string {
	return "pickup:dispatch:" + now.Format("2006-01-02")
}
