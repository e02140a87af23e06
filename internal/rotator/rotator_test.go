package rotator

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/linkpage/internal/schedule/scheduletest"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1337))
}

func TestShuffle_IsPermutation(t *testing.T) {
	rng := seeded()
	for n := 0; n <= 12; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 10
		}
		orig := slices.Clone(in)

		out := Shuffle(rng, in)
		require.Len(t, out, n)
		assert.Equal(t, orig, in, "input must not be modified")
		assert.ElementsMatch(t, in, out)
	}
}

func TestShuffle_KeepsDuplicates(t *testing.T) {
	in := []string{"a", "a", "b", "c", "c", "c"}
	out := Shuffle(seeded(), in)
	assert.ElementsMatch(t, in, out)
}

func TestShuffle_PositionsAreUniform(t *testing.T) {
	const (
		n      = 5
		trials = 50000
	)
	rng := seeded()
	in := []int{0, 1, 2, 3, 4}

	// counts[element][position]
	var counts [n][n]int
	for range trials {
		for pos, el := range Shuffle(rng, in) {
			counts[el][pos]++
		}
	}

	expected := float64(trials) / n
	for el := range n {
		for pos := range n {
			got := float64(counts[el][pos])
			assert.InDeltaf(t, expected, got, expected*0.05,
				"element %d at position %d", el, pos)
		}
	}
}

func TestShuffle_AllOrderingsReachable(t *testing.T) {
	rng := seeded()
	seen := map[string]bool{}
	for range 2000 {
		out := Shuffle(rng, []string{"a", "b", "c"})
		seen[out[0]+out[1]+out[2]] = true
	}
	assert.Len(t, seen, 6)
}

func TestRotator_CursorIsTicksModLen(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New([]string{"a", "b", "c", "d"}, Config{Clock: clock, Rand: seeded()})
	require.True(t, r.Start())
	assert.Equal(t, 0, r.Cursor())

	for k := 1; k <= 13; k++ {
		clock.Advance(Period)
		assert.Equal(t, k%4, r.Cursor(), "after %d ticks", k)
		assert.Less(t, r.Cursor(), r.Len())
	}
}

func TestRotator_TicksOnlyOnPeriod(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New([]int{1, 2, 3}, Config{Clock: clock})
	r.Start()

	clock.Advance(2999 * time.Millisecond)
	assert.Equal(t, 0, r.Cursor())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, r.Cursor())
}

func TestRotator_CurrentFollowsShuffledOrder(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New([]string{"x", "y", "z"}, Config{Clock: clock, Rand: seeded()})
	order := r.Items()
	r.Start()

	for k := range 7 {
		got, ok := r.Current()
		require.True(t, ok)
		assert.Equal(t, order[k%3], got)
		clock.Advance(Period)
	}
	assert.Equal(t, order, r.Items(), "permutation must not change between ticks")
}

func TestRotator_EmptyNeverStarts(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New[string](nil, Config{Clock: clock})

	assert.False(t, r.Start())
	assert.False(t, r.Running())
	assert.Equal(t, 0, clock.Pending())

	_, ok := r.Current()
	assert.False(t, ok)

	clock.Advance(time.Minute)
	assert.Equal(t, 0, r.Cursor())
}

func TestRotator_SingleItemStaysAtZero(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New([]string{"only"}, Config{Clock: clock})
	r.Start()

	clock.Advance(10 * Period)
	assert.Equal(t, 0, r.Cursor())
}

func TestRotator_StopCancelsTimer(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	var advances int
	r := New([]int{1, 2}, Config{Clock: clock, OnAdvance: func(int) { advances++ }})
	r.Start()

	clock.Advance(Period)
	r.Stop()
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(10 * Period)
	assert.Equal(t, 1, advances)
	assert.Equal(t, 1, r.Cursor())
}

func TestRotator_ResetCancelsStaleSequence(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	var cursors []int
	r := New([]int{1, 2, 3}, Config{Clock: clock, OnAdvance: func(c int) { cursors = append(cursors, c) }})
	r.Start()

	clock.Advance(2 * Period)
	clock.Advance(Period / 2)
	r.Reset([]int{7, 8})
	assert.Equal(t, 0, r.Cursor())
	assert.ElementsMatch(t, []int{7, 8}, r.Items())
	assert.Equal(t, 1, clock.Pending())

	// The new sequence gets a full period; the old half-elapsed one is gone.
	clock.Advance(Period / 2)
	assert.Equal(t, 0, r.Cursor())
	clock.Advance(Period / 2)
	assert.Equal(t, 1, r.Cursor())
	assert.Equal(t, []int{1, 2, 1}, cursors)
}

func TestRotator_ResetToEmptyStops(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	r := New([]int{1, 2}, Config{Clock: clock})
	r.Start()

	r.Reset(nil)
	assert.False(t, r.Running())
	assert.Equal(t, 0, clock.Pending())
}

func TestRotator_OnAdvanceReceivesCursor(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	var got []int
	r := New([]int{1, 2, 3}, Config{Clock: clock, Period: time.Second, OnAdvance: func(c int) { got = append(got, c) }})
	r.Start()

	clock.Advance(4 * time.Second)
	assert.Equal(t, []int{1, 2, 0, 1}, got)
}
