package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidIntent      = errors.New("invalid intent (must be tap, long-press, swipe-left, swipe-right, or none)")
	ErrInvalidPointerKind = errors.New("invalid pointer event type (must be down, move, up, cancel, or leave)")
)

// Intent is the classified outcome of one pointer gesture.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentTap
	IntentLongPress
	IntentSwipeLeft
	IntentSwipeRight
)

var intentNames = map[Intent]string{
	IntentNone:       "none",
	IntentTap:        "tap",
	IntentLongPress:  "long-press",
	IntentSwipeLeft:  "swipe-left",
	IntentSwipeRight: "swipe-right",
}

func ParseIntent(s string) (Intent, error) {
	for intent, name := range intentNames {
		if name == s {
			return intent, nil
		}
	}
	return IntentNone, fmt.Errorf("%w: %q", ErrInvalidIntent, s)
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return intentNames[IntentNone]
}

func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	PointerCancel
	PointerLeave
)

var pointerKindNames = map[string]PointerKind{
	"down":   PointerDown,
	"move":   PointerMove,
	"up":     PointerUp,
	"cancel": PointerCancel,
	"leave":  PointerLeave,
}

func ParsePointerKind(s string) (PointerKind, error) {
	if kind, ok := pointerKindNames[s]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPointerKind, s)
}

// PointerEvent is one step of a pointer lifecycle on a single target.
// X and Y are client coordinates in CSS pixels.
type PointerEvent struct {
	Kind PointerKind
	X    float64
	Y    float64
	At   time.Time
}
