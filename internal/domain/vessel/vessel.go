// internal/domain/vessel/vessel.go
package vessel

import (
	"context"
	"time"
)

// WeatherWindow is an operator-configured envelope of acceptable conditions.
type WeatherWindow struct {
	Label     string  `json:"label"`
	MaxWaveM  float64 `json:"maxWaveM"`
	MaxWindKt float64 `json:"maxWindKt"`
}

// ScheduleEntry is one planned voyage leg. SwellFt and WindKt are forecast
// figures from the schedule, not live telemetry; nil means not forecast.
type ScheduleEntry struct {
	VoyageID      string    `json:"voyageId"`
	DeparturePort string    `json:"departurePort"`
	ArrivalPort   string    `json:"arrivalPort"`
	ETD           time.Time `json:"etd"`
	ETA           time.Time `json:"eta"`
	SwellFt       *float64  `json:"swellFt,omitempty"`
	WindKt        *float64  `json:"windKt,omitempty"`
}

// State is the vessel's current identity, status and plan as reported by the
// upstream vessel service.
type State struct {
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	CurrentPort     string          `json:"currentPort"`
	CurrentVoyageID string          `json:"currentVoyageId"`
	Schedule        []ScheduleEntry `json:"schedule"`
	WeatherWindows  []WeatherWindow `json:"weatherWindows"`
}

// Client fetches the current vessel state from the upstream service.
type Client interface {
	FetchState(ctx context.Context) (*State, error)
}
