package testutil

import (
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var _ domain.RenderSink = (*RecordingSink)(nil)

// RecordingSink keeps every snapshot it receives.
type RecordingSink struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
}

func (s *RecordingSink) Refresh(snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
}

func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// Last returns the most recent snapshot and false when none was received.
func (s *RecordingSink) Last() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return domain.Snapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1], true
}
