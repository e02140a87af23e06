package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heldClock keeps armed callbacks so a test can fire them late by hand.
type heldClock struct {
	held []func()
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return false }

func (c *heldClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.held = append(c.held, f)
	return heldTimer{}
}

func TestSlot_StaleCallbackIsDropped(t *testing.T) {
	clock := &heldClock{}
	slot := NewSlot(clock)

	var runs int
	slot.Schedule(time.Second, func() { runs++ })

	slot.mu.Lock()
	stale := slot.gen
	slot.mu.Unlock()

	// The timer could not be stopped, so its callback still runs after Cancel.
	slot.Cancel()
	assert.False(t, slot.claim(stale))

	require.Len(t, clock.held, 1)
	clock.held[0]()
	assert.Equal(t, 0, runs)
}
