// internal/app/briefing_service.go
package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"vessel_briefing_bot/internal/domain/briefing"
	"vessel_briefing_bot/internal/domain/marine"
	"vessel_briefing_bot/internal/domain/vessel"
)

// BriefingService defines the report aggregation operations.
type BriefingService interface {
	// Generate runs one full aggregation pass for the slot: fetch the
	// upstream sources, compose the briefing text, dispatch it to every
	// configured channel and persist the resulting record. It fails only
	// when a mandatory upstream source fails.
	Generate(ctx context.Context, slot briefing.Slot, now time.Time) (*briefing.ReportRecord, error)
	// Preview returns the last persisted record without any fetch or
	// dispatch. Nil when no pass has completed yet.
	Preview() *briefing.ReportRecord
}

// UpstreamError marks the failure of a mandatory upstream source. Optional
// sources and channel failures never produce one.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// BriefingServiceImpl implements BriefingService.
type BriefingServiceImpl struct {
	vesselClient    vessel.Client
	marineClient    marine.Client
	narrativeClient briefing.NarrativeClient
	senders         []briefing.ChannelSender
	state           *briefing.State
	location        *time.Location
	logger          *log.Logger
}

func NewBriefingServiceImpl(
	vc vessel.Client,
	mc marine.Client,
	nc briefing.NarrativeClient,
	senders []briefing.ChannelSender,
	state *briefing.State,
	location *time.Location,
	logger *log.Logger,
) *BriefingServiceImpl {
	return &BriefingServiceImpl{
		vesselClient:    vc,
		marineClient:    mc,
		narrativeClient: nc,
		senders:         senders,
		state:           state,
		location:        location,
		logger:          logger,
	}
}

func (s *BriefingServiceImpl) Generate(ctx context.Context, slot briefing.Slot, now time.Time) (*briefing.ReportRecord, error) {
	s.logger.Printf("INFO: Generating %s briefing at %s", slot, now.In(s.location).Format(time.RFC3339))

	vesselState, err := s.vesselClient.FetchState(ctx)
	if err != nil {
		s.logger.Printf("ERROR: Vessel state fetch failed, aborting briefing: %v", err)
		return nil, &UpstreamError{Source: "vessel", Err: err}
	}

	// Optional source: a missing snapshot degrades the text, nothing more.
	snap, err := s.marineClient.FetchSnapshot(ctx, vesselState.CurrentPort)
	if err != nil {
		s.logger.Printf("WARN: Marine snapshot unavailable for port %q, continuing without it: %v", vesselState.CurrentPort, err)
		snap = nil
	}

	narrative, err := s.narrativeClient.GenerateNarrative(ctx, s.buildNarrativeRequest(vesselState, now))
	if err != nil {
		s.logger.Printf("ERROR: Narrative generation failed, aborting briefing: %v", err)
		return nil, &UpstreamError{Source: "narrative", Err: err}
	}

	body := strings.TrimSpace(narrative) + "\n\n" + marineLine(snap)
	subject := fmt.Sprintf("Vessel Briefing (%s) %s", slot, now.In(s.location).Format("2006-01-02"))

	sent := s.dispatch(ctx, subject, body)
	ok := false
	for _, result := range sent {
		if result.OK {
			ok = true
		} else {
			s.logger.Printf("WARN: Channel %s delivery failed: %s", result.Channel, result.Error)
		}
	}

	record := &briefing.ReportRecord{
		GeneratedAt: now,
		Slot:        slot,
		OK:          ok,
		Sent:        sent,
		Sample:      body,
		Timezone:    s.location.String(),
	}
	s.state.Replace(record)
	s.logger.Printf("INFO: Briefing for slot %s dispatched to %d channel(s), overall ok=%t", slot, len(sent), ok)
	return record, nil
}

func (s *BriefingServiceImpl) Preview() *briefing.ReportRecord {
	return s.state.Last()
}

// dispatch fans the composed body out to every configured channel. Sends run
// concurrently since channels share no state; results land in configured
// channel order, failures included.
func (s *BriefingServiceImpl) dispatch(ctx context.Context, subject, body string) []briefing.NotifyResult {
	results := make([]briefing.NotifyResult, len(s.senders))
	var wg sync.WaitGroup
	for i, sender := range s.senders {
		wg.Add(1)
		go func(i int, sender briefing.ChannelSender) {
			defer wg.Done()
			results[i] = sender.Send(ctx, subject, body)
		}(i, sender)
	}
	wg.Wait()
	return results
}

func (s *BriefingServiceImpl) buildNarrativeRequest(state *vessel.State, now time.Time) *briefing.NarrativeRequest {
	items := make([]briefing.ScheduleItem, 0, len(state.Schedule))
	for _, entry := range state.Schedule {
		items = append(items, briefing.ScheduleItem{
			ScheduleEntry: entry,
			IOI:           marine.ScoreFromVoyage(entry.SwellFt, entry.WindKt),
		})
	}
	return &briefing.NarrativeRequest{
		Now:             now,
		VesselName:      state.Name,
		VesselStatus:    state.Status,
		CurrentVoyageID: state.CurrentVoyageID,
		Schedule:        items,
		WeatherWindows:  state.WeatherWindows,
	}
}

// marineLine formats the snapshot summary appended to every briefing. Each
// measurement shows two decimals with its unit, or "n/a" when the provider
// had no value. The IOI prefers the provider's precomputed index, else the
// locally scored one.
func marineLine(snap *marine.Snapshot) string {
	if snap == nil {
		return "[Marine Snapshot] not available"
	}
	hs := "n/a"
	if snap.HsM != nil {
		hs = fmt.Sprintf("%.2f m", *snap.HsM)
	}
	wind := "n/a"
	if snap.WindKt != nil {
		wind = fmt.Sprintf("%.2f kt", *snap.WindKt)
	}
	var ioi string
	if snap.Index != nil {
		ioi = strconv.Itoa(int(math.Round(*snap.Index)))
	} else {
		ioi = strconv.Itoa(marine.Score(*snap))
	}
	return fmt.Sprintf("[Marine Snapshot] Hs %s · Wind %s · IOI %s", hs, wind, ioi)
}
