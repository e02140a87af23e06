package schedule_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Zachkp/linkpage/internal/schedule"
	"github.com/Zachkp/linkpage/internal/schedule/scheduletest"
)

func TestSlot_ScheduleRunsOnce(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	slot := schedule.NewSlot(clock)

	var runs int
	slot.Schedule(2*time.Second, func() { runs++ })
	assert.True(t, slot.Pending())

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, runs)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, runs)
	assert.False(t, slot.Pending())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, runs)
}

func TestSlot_ScheduleReplacesPending(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	slot := schedule.NewSlot(clock)

	var fired []string
	slot.Schedule(2*time.Second, func() { fired = append(fired, "first") })
	clock.Advance(500 * time.Millisecond)
	slot.Schedule(2*time.Second, func() { fired = append(fired, "second") })

	clock.Advance(1500 * time.Millisecond)
	assert.Empty(t, fired)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"second"}, fired)
}

func TestSlot_EveryRepeatsUntilCancel(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	slot := schedule.NewSlot(clock)

	var ticks int
	slot.Every(3*time.Second, func() { ticks++ })

	clock.Advance(9 * time.Second)
	assert.Equal(t, 3, ticks)

	slot.Cancel()
	assert.False(t, slot.Pending())
	clock.Advance(time.Minute)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, clock.Pending())
}

func TestSlot_CancelFromInsideEvery(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	slot := schedule.NewSlot(clock)

	var ticks int
	slot.Every(time.Second, func() {
		ticks++
		if ticks == 2 {
			slot.Cancel()
		}
	})

	clock.Advance(10 * time.Second)
	assert.Equal(t, 2, ticks)
	assert.False(t, slot.Pending())
}

func TestSlot_RealClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	slot := schedule.NewSlot(nil)
	var runs atomic.Int32
	done := make(chan struct{})

	slot.Every(5*time.Millisecond, func() {
		if runs.Add(1) == 3 {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("repeating callback did not run three times")
	}
	slot.Cancel()
	time.Sleep(10 * time.Millisecond)

	n := runs.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, n, runs.Load())
}
