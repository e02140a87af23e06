// Package schedule provides a single-slot handle for delayed and repeating
// callbacks. Scheduling into a slot always cancels whatever it held before,
// so at most one callback per slot is ever pending.
package schedule

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock arms callbacks. Real() uses the runtime timers; scheduletest has a
// manually advanced one.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

// Slot holds at most one pending callback.
type Slot struct {
	mu    sync.Mutex
	clock Clock
	timer Timer
	gen   uint64
}

// NewSlot returns an empty slot armed by clock. A nil clock means Real().
func NewSlot(clock Clock) *Slot {
	if clock == nil {
		clock = Real()
	}
	return &Slot{clock: clock}
}

// Schedule cancels the pending callback, if any, and runs f once after d.
func (s *Slot) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.resetLocked()
	s.timer = s.clock.AfterFunc(d, func() {
		if !s.claim(gen) {
			return
		}
		f()
	})
}

// Every cancels the pending callback, if any, and runs f every d until the
// slot is cancelled or rescheduled. The next run is armed only after f
// returns, so runs never overlap.
func (s *Slot) Every(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.resetLocked()
	s.armLocked(gen, d, f)
}

func (s *Slot) armLocked(gen uint64, d time.Duration, f func()) {
	s.timer = s.clock.AfterFunc(d, func() {
		if !s.claim(gen) {
			return
		}
		f()

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.armLocked(gen, d, f)
		}
	})
}

// Cancel stops the pending callback. A callback that already started is
// not interrupted, but a repeating one is not re-armed.
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Pending reports whether a callback is armed and has not started yet.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Slot) resetLocked() uint64 {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	return s.gen
}

// claim reports whether the callback of generation gen is still current and
// marks the slot empty. A stale callback that fired while losing the race
// with Cancel or Schedule gets false.
func (s *Slot) claim(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.timer = nil
	return true
}
