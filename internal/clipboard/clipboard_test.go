package clipboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zachkp/linkpage/internal/schedule/scheduletest"
)

type memClipboard struct {
	last string
	err  error
}

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.last = text
	return nil
}

func TestCopier_MarksAndClearsAfterAck(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	cb := &memClipboard{}
	c := NewCopier(cb, Options{Clock: clock})

	require.NoError(t, c.Copy("bc1qaddr", "BTC"))
	assert.Equal(t, "bc1qaddr", cb.last)
	assert.Equal(t, "BTC", c.Copied())

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, "BTC", c.Copied())

	clock.Advance(time.Millisecond)
	assert.Equal(t, "", c.Copied())
}

func TestCopier_SecondCopyResetsWindow(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	c := NewCopier(&memClipboard{}, Options{Clock: clock})

	require.NoError(t, c.Copy("bc1qaddr", "BTC"))
	clock.Advance(500 * time.Millisecond)

	require.NoError(t, c.Copy("0xaddr", "ETH"))
	assert.Equal(t, "ETH", c.Copied())

	// BTC's original window would have ended at 2000ms.
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, "ETH", c.Copied())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, "", c.Copied())
}

func TestCopier_SameNameTwiceExtendsWindow(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	c := NewCopier(&memClipboard{}, Options{Clock: clock})

	require.NoError(t, c.Copy("a", "BTC"))
	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, c.Copy("a", "BTC"))

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, "BTC", c.Copied())
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, "", c.Copied())
}

func TestCopier_FailureLeavesMarkerAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	clock := scheduletest.NewFakeClock()
	cb := &memClipboard{}
	c := NewCopier(cb, Options{Clock: clock, Logger: zap.New(core)})

	err := c.Copy("a", "BTC")
	require.NoError(t, err)

	cb.err = errors.New("permission denied")
	err = c.Copy("b", "ETH")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, "BTC", c.Copied(), "a failed copy must not move the marker")
	assert.Equal(t, 1, logs.FilterMessage("Failed to copy").Len())

	clock.Advance(AckDuration)
	assert.Equal(t, "", c.Copied())
}

func TestCopier_FailureOnFreshCopierStaysUnset(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	c := NewCopier(WriterFunc(func(string) error { return errors.New("no display") }), Options{Clock: clock})

	assert.ErrorIs(t, c.Copy("a", "BTC"), ErrWrite)
	assert.Equal(t, "", c.Copied())
	assert.Equal(t, 0, clock.Pending())
}

func TestCopier_NilWriter(t *testing.T) {
	c := NewCopier(nil, Options{Clock: scheduletest.NewFakeClock()})
	assert.ErrorIs(t, c.Copy("a", "BTC"), ErrWrite)
}

func TestCopier_OnChange(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	var changes []string
	c := NewCopier(&memClipboard{}, Options{Clock: clock, OnChange: func(s string) { changes = append(changes, s) }})

	require.NoError(t, c.Copy("a", "BTC"))
	require.NoError(t, c.Copy("b", "ETH"))
	clock.Advance(AckDuration)

	assert.Equal(t, []string{"BTC", "ETH", ""}, changes)
}

func TestCopier_CloseCancelsClear(t *testing.T) {
	clock := scheduletest.NewFakeClock()
	c := NewCopier(&memClipboard{}, Options{Clock: clock})

	require.NoError(t, c.Copy("a", "BTC"))
	c.Close()
	assert.Equal(t, 0, clock.Pending())
}

func TestCopier_StaleClearIgnored(t *testing.T) {
	c := NewCopier(&memClipboard{}, Options{Clock: scheduletest.NewFakeClock()})

	seq := c.mark("BTC")
	c.mark("ETH")
	c.clear(seq)
	assert.Equal(t, "ETH", c.Copied())
}
