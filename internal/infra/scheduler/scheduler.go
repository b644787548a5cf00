// internal/infra/scheduler/scheduler.go
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"vessel_briefing_bot/internal/domain/briefing"
	"vessel_briefing_bot/internal/domain/dispatch"
)

// DispatchScheduler fires the briefing dispatch endpoint on the am and pm
// cron specs. A slot-keyed lock record suppresses re-firing within the
// minimum interval after a successful dispatch; a failed dispatch leaves the
// lock untouched so the next tick may retry.
type DispatchScheduler struct {
	cronEngine      *cron.Cron
	lockStore       dispatch.Store
	client          *http.Client
	dispatchBaseURL string
	cronSpecAM      string
	cronSpecPM      string
	logger          *log.Logger
	now             func() time.Time
}

func NewDispatchScheduler(
	lockStore dispatch.Store,
	client *http.Client,
	dispatchBaseURL string,
	cronSpecAM string, // e.g. "0 7 * * *"
	cronSpecPM string, // e.g. "0 17 * * *"
	location *time.Location,
	logger *log.Logger,
) *DispatchScheduler {
	return &DispatchScheduler{
		cronEngine:      cron.New(cron.WithLocation(location)),
		lockStore:       lockStore,
		client:          client,
		dispatchBaseURL: strings.TrimRight(dispatchBaseURL, "/"),
		cronSpecAM:      cronSpecAM,
		cronSpecPM:      cronSpecPM,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *DispatchScheduler) Start() {
	s.logger.Println("INFO: Starting dispatch scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecAM, func() {
		s.logger.Println("INFO: Cron job triggered for am slot.")
		s.runTick(briefing.SlotAM)
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add am slot cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecPM, func() {
		s.logger.Println("INFO: Cron job triggered for pm slot.")
		s.runTick(briefing.SlotPM)
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add pm slot cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Println("INFO: Dispatch scheduler started with am and pm jobs.")
}

func (s *DispatchScheduler) runTick(slot briefing.Slot) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.Tick(ctx, slot); err != nil {
		s.logger.Printf("ERROR: Dispatch tick for slot %s failed: %v", slot, err)
	}
}

// Tick runs one scheduled trigger for the slot: read the lock, skip when the
// same slot succeeded within the re-fire window, otherwise call the dispatch
// endpoint and record the lock only on overall success.
func (s *DispatchScheduler) Tick(ctx context.Context, slot briefing.Slot) error {
	now := s.now()

	last, err := s.lockStore.Last(ctx)
	if err != nil && err != dispatch.ErrNoLock {
		// The guard is best-effort: an unreadable lock must not block a
		// scheduled briefing, so fail open and dispatch anyway.
		s.logger.Printf("WARN: Could not read dispatch lock, proceeding without it: %v", err)
		last = nil
	}
	if last != nil && last.Slot == slot {
		elapsed := now.UnixMilli() - last.Timestamp
		if elapsed < dispatch.MinRefireInterval.Milliseconds() {
			s.logger.Printf("INFO: Skipping dispatch for slot %s, last success was %dms ago (within re-fire window).", slot, elapsed)
			return nil
		}
	}

	ok, err := s.triggerDispatch(ctx, slot)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Printf("WARN: Dispatch for slot %s reported overall failure; lock not updated, next tick may retry.", slot)
		return nil
	}

	if err := s.lockStore.Save(ctx, &dispatch.LockRecord{Slot: slot, Timestamp: now.UnixMilli()}); err != nil {
		s.logger.Printf("ERROR: Dispatch for slot %s succeeded but lock update failed: %v", slot, err)
		return nil
	}
	s.logger.Printf("INFO: Dispatch for slot %s completed successfully.", slot)
	return nil
}

func (s *DispatchScheduler) triggerDispatch(ctx context.Context, slot briefing.Slot) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/briefing/dispatch?slot=%s", s.dispatchBaseURL, slot)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("building dispatch request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling dispatch endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("dispatch endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decoding dispatch response: %w", err)
	}
	return body.OK, nil
}

func (s *DispatchScheduler) Stop() {
	s.logger.Println("INFO: Stopping dispatch scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Println("INFO: Dispatch scheduler gracefully stopped.")
}
