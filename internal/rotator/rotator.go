// Package rotator shows a sequence in a random order that stays fixed for
// the session, stepping through it on a fixed cadence.
package rotator

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Zachkp/linkpage/internal/schedule"
)

// Period is the default time between two advances.
const Period = 3 * time.Second

// Shuffle returns a uniformly random permutation of items using a
// Fisher–Yates shuffle. The input slice is not modified. A nil rng uses the
// package-level source.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

type Config struct {
	Clock  schedule.Clock
	Period time.Duration
	Rand   *rand.Rand

	// OnAdvance is called after every tick with the new cursor. It runs on
	// the clock's goroutine and must not block.
	OnAdvance func(cursor int)
}

// Rotator holds a shuffled sequence and a cursor into it.
type Rotator[T any] struct {
	mu      sync.Mutex
	cfg     Config
	items   []T
	cursor  int
	running bool
	slot    *schedule.Slot
}

// New shuffles items once and returns a stopped rotator.
func New[T any](items []T, cfg Config) *Rotator[T] {
	if cfg.Period <= 0 {
		cfg.Period = Period
	}
	return &Rotator[T]{
		cfg:   cfg,
		items: Shuffle(cfg.Rand, items),
		slot:  schedule.NewSlot(cfg.Clock),
	}
}

// Start arms the repeating advance. It returns false and arms nothing when
// the sequence is empty.
func (r *Rotator[T]) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return false
	}
	r.running = true
	r.slot.Every(r.cfg.Period, r.advance)
	return true
}

// Stop cancels the repeating advance. The cursor is kept.
func (r *Rotator[T]) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	r.slot.Cancel()
}

// Reset replaces the sequence: the pending advance is cancelled, items are
// reshuffled and the cursor returns to zero. A running rotator restarts
// unless the new sequence is empty.
func (r *Rotator[T]) Reset(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slot.Cancel()
	r.items = Shuffle(r.cfg.Rand, items)
	r.cursor = 0
	if r.running && len(r.items) > 0 {
		r.slot.Every(r.cfg.Period, r.advance)
	} else {
		r.running = false
	}
}

// Running reports whether an advance is armed.
func (r *Rotator[T]) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Current returns the item under the cursor, or false for an empty sequence.
func (r *Rotator[T]) Current() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if len(r.items) == 0 {
		return zero, false
	}
	return r.items[r.cursor], true
}

func (r *Rotator[T]) Cursor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

func (r *Rotator[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Items returns a copy of the shuffled sequence.
func (r *Rotator[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Rotator[T]) advance() {
	r.mu.Lock()
	if len(r.items) == 0 {
		r.mu.Unlock()
		return
	}
	r.cursor = (r.cursor + 1) % len(r.items)
	cursor := r.cursor
	r.mu.Unlock()

	if r.cfg.OnAdvance != nil {
		r.cfg.OnAdvance(cursor)
	}
}
