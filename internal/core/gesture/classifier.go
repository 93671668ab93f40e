// Package gesture turns raw pointer event sequences into discrete intents.
package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

const (
	MoveThreshold         = 8.0
	ScrollCancelThreshold = 16.0
	SwipeThreshold        = 48.0
	TapWindow             = 540 * time.Millisecond
	LongPressDelay        = 560 * time.Millisecond

	// SwitcherVerticalTolerance replaces the move and scroll rules for the
	// year switcher, which only recognises swipes.
	SwitcherVerticalTolerance = 26.0
)

// Classifier interprets the pointer events of one day cell.
// Tap and swipe intents are returned from Handle; a long press is delivered
// asynchronously through the onLongPress callback when its timer fires.
type Classifier struct {
	scheduler   Scheduler
	onLongPress func()

	mu         sync.Mutex
	active     bool
	startX     float64
	startY     float64
	startAt    time.Time
	moved      bool
	consumed   bool
	timer      Timer
	generation uint64
}

func NewClassifier(scheduler Scheduler, onLongPress func()) *Classifier {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &Classifier{
		scheduler:   scheduler,
		onLongPress: onLongPress,
	}
}

func (c *Classifier) Handle(ev domain.PointerEvent) domain.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case domain.PointerDown:
		c.begin(ev)
	case domain.PointerMove:
		c.move(ev)
	case domain.PointerUp:
		return c.end(ev)
	case domain.PointerCancel, domain.PointerLeave:
		c.reset()
	}
	return domain.IntentNone
}

// Pending reports whether a long-press timer is armed.
func (c *Classifier) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

func (c *Classifier) begin(ev domain.PointerEvent) {
	c.reset()

	c.active = true
	c.startX = ev.X
	c.startY = ev.Y
	c.startAt = ev.At

	gen := c.generation
	c.timer = c.scheduler.AfterFunc(LongPressDelay, func() {
		c.fireLongPress(gen)
	})
}

func (c *Classifier) move(ev domain.PointerEvent) {
	if !c.active {
		return
	}

	dx := math.Abs(ev.X - c.startX)
	dy := math.Abs(ev.Y - c.startY)
	if dx > MoveThreshold || dy > MoveThreshold {
		c.moved = true
	}
	if dy > ScrollCancelThreshold {
		c.stopTimer()
	}
}

func (c *Classifier) end(ev domain.PointerEvent) domain.Intent {
	if !c.active {
		return domain.IntentNone
	}

	consumed := c.consumed
	moved := c.moved
	dx := ev.X - c.startX
	elapsed := ev.At.Sub(c.startAt)
	c.reset()

	if consumed {
		return domain.IntentNone
	}

	if math.Abs(dx) > SwipeThreshold {
		if dx > 0 {
			return domain.IntentSwipeRight
		}
		return domain.IntentSwipeLeft
	}

	if !moved && elapsed < TapWindow {
		return domain.IntentTap
	}

	return domain.IntentNone
}

func (c *Classifier) fireLongPress(gen uint64) {
	c.mu.Lock()
	if !c.active || c.consumed || c.generation != gen {
		c.mu.Unlock()
		return
	}
	c.consumed = true
	c.moved = true
	c.timer = nil
	c.mu.Unlock()

	if c.onLongPress != nil {
		c.onLongPress()
	}
}

func (c *Classifier) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// reset concludes the current gesture. Bumping the generation keeps a timer
// that could not be stopped in time from emitting.
func (c *Classifier) reset() {
	c.stopTimer()
	c.generation++
	c.active = false
	c.moved = false
	c.consumed = false
}
