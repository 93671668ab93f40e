package gesture

import (
	"math"
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

// SwipeClassifier interprets pointer events on the year switcher.
// Only horizontal swipes are recognised.
type SwipeClassifier struct {
	mu     sync.Mutex
	active bool
	startX float64
	startY float64
}

func NewSwipeClassifier() *SwipeClassifier {
	return &SwipeClassifier{}
}

func (s *SwipeClassifier) Handle(ev domain.PointerEvent) domain.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case domain.PointerDown:
		s.active = true
		s.startX = ev.X
		s.startY = ev.Y
	case domain.PointerUp:
		if !s.active {
			return domain.IntentNone
		}
		s.active = false

		dx := ev.X - s.startX
		dy := math.Abs(ev.Y - s.startY)
		if math.Abs(dx) > SwipeThreshold && dy < SwitcherVerticalTolerance {
			if dx < 0 {
				return domain.IntentSwipeLeft
			}
			return domain.IntentSwipeRight
		}
	case domain.PointerCancel, domain.PointerLeave:
		s.active = false
	}
	return domain.IntentNone
}
