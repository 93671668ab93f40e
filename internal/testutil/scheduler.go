// Package testutil provides shared test utilities for the tracker.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/gesture"
)

// Compile-time interface satisfaction check.
var _ gesture.Scheduler = (*FakeScheduler)(nil)

// FakeScheduler is a manually advanced gesture.Scheduler. Callbacks run
// synchronously on the goroutine calling Advance.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	owner   *FakeScheduler
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) gesture.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{owner: s, due: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the fake clock forward and fires every timer that became due.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.due <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.f()
	}
}

// Active returns the number of timers neither stopped nor fired.
func (s *FakeScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
