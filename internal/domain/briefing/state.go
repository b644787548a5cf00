// internal/domain/briefing/state.go
package briefing

import "sync"

// State holds the most recently produced ReportRecord for the lifetime of
// the process. Records are replaced atomically; no history is retained.
type State struct {
	mu   sync.RWMutex
	last *ReportRecord
}

func NewState() *State {
	return &State{}
}

// Replace installs rec as the latest record, discarding any prior one.
func (s *State) Replace(rec *ReportRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = rec
}

// Last returns the latest record, or nil when no aggregation pass has
// completed yet. The record is immutable after creation, so callers may
// read it without copying.
func (s *State) Last() *ReportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
