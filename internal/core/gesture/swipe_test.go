package gesture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/gesture"
)

func TestSwipeClassifier(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   domain.Intent
	}{
		{"Swipe left", -60, 0, domain.IntentSwipeLeft},
		{"Swipe right", 60, 0, domain.IntentSwipeRight},
		{"Diagonal within tolerance", 80, 25, domain.IntentSwipeRight},
		{"Too vertical", 80, 26, domain.IntentNone},
		{"Too short", 48, 0, domain.IntentNone},
		{"Tap is ignored", 0, 0, domain.IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gesture.NewSwipeClassifier()
			s.Handle(ev(domain.PointerDown, 300, 40, 0))
			assert.Equal(t, domain.IntentNone, s.Handle(ev(domain.PointerMove, 300+tt.dx/2, 40, 20)))
			assert.Equal(t, tt.want, s.Handle(ev(domain.PointerUp, 300+tt.dx, 40+tt.dy, 40)))
		})
	}
}

func TestSwipeClassifier_NoLongPressOnHold(t *testing.T) {
	s := gesture.NewSwipeClassifier()
	s.Handle(ev(domain.PointerDown, 0, 0, 0))
	assert.Equal(t, domain.IntentNone, s.Handle(ev(domain.PointerUp, 0, 0, 5000)))
}

func TestSwipeClassifier_CancelDiscards(t *testing.T) {
	s := gesture.NewSwipeClassifier()
	s.Handle(ev(domain.PointerDown, 0, 0, 0))
	s.Handle(ev(domain.PointerCancel, 0, 0, 10))
	assert.Equal(t, domain.IntentNone, s.Handle(ev(domain.PointerUp, -100, 0, 20)))
}
