// internal/infra/lockfile/store.go
package lockfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vessel_briefing_bot/internal/domain/dispatch"
)

// FileStore persists the last dispatch lock as a small JSON document on
// local disk. The default backend when no lock database is configured.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Last(_ context.Context) (*dispatch.LockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dispatch.ErrNoLock
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	record := &dispatch.LockRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	return record, nil
}

func (s *FileStore) Save(_ context.Context, record *dispatch.LockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding lock record: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot leave a torn file.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing lock file: %w", err)
	}
	return nil
}
