// internal/domain/briefing/narrative.go
package briefing

import (
	"context"
	"time"

	"vessel_briefing_bot/internal/domain/vessel"
)

// ScheduleItem is a schedule entry annotated with its derived operability
// index so the narrative upstream can reason about each leg's risk.
type ScheduleItem struct {
	vessel.ScheduleEntry
	IOI int `json:"ioi"`
}

// NarrativeRequest carries everything the narrative upstream needs to write
// the briefing text for the current moment.
type NarrativeRequest struct {
	Now             time.Time              `json:"now"`
	VesselName      string                 `json:"vesselName"`
	VesselStatus    string                 `json:"vesselStatus"`
	CurrentVoyageID string                 `json:"currentVoyageId"`
	Schedule        []ScheduleItem         `json:"schedule"`
	WeatherWindows  []vessel.WeatherWindow `json:"weatherWindows"`
}

// NarrativeClient generates the briefing narrative from vessel state and
// schedule. The narrative is the substantive payload of a report: failure
// here is a mandatory-source failure.
type NarrativeClient interface {
	GenerateNarrative(ctx context.Context, req *NarrativeRequest) (string, error)
}
