// internal/domain/dispatch/lock.go
package dispatch

import (
	"context"
	"errors"
	"time"

	"vessel_briefing_bot/internal/domain/briefing"
)

// MinRefireInterval is the window within which a second tick for the same
// slot is suppressed after a successful dispatch.
const MinRefireInterval = 5 * time.Minute

// ErrNoLock is returned by a Store when no dispatch has been recorded yet.
var ErrNoLock = errors.New("no dispatch lock recorded")

// LockRecord marks the last successful dispatch. Timestamp is epoch millis.
type LockRecord struct {
	Slot      briefing.Slot `json:"slot"`
	Timestamp int64         `json:"timestamp"`
}

// Store persists the single last-dispatch record in some durable keyed
// store. The guard built on it is best-effort and window-based, not a
// distributed mutex.
type Store interface {
	Last(ctx context.Context) (*LockRecord, error)
	Save(ctx context.Context, rec *LockRecord) error
}
