// internal/domain/marine/snapshot.go
package marine

import (
	"context"
	"time"
)

// Snapshot is one fetch of marine conditions at a port. Every measurement is
// independently optional: nil means the sensor or provider had no value, not
// zero. Index is a precomputed composite index some providers already supply.
type Snapshot struct {
	HsM          *float64  `json:"hsM,omitempty"`
	WindKt       *float64  `json:"windKt,omitempty"`
	SwellPeriodS *float64  `json:"swellPeriodS,omitempty"`
	Index        *float64  `json:"index,omitempty"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// Client fetches a marine snapshot for a port. Callers treat any failure as
// an optional-source failure: the report degrades, it does not abort.
type Client interface {
	FetchSnapshot(ctx context.Context, port string) (*Snapshot, error)
}
