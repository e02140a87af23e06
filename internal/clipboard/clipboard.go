// Package clipboard copies payment addresses to the system clipboard and
// tracks a short-lived "copied" acknowledgment.
package clipboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/schedule"
)

// AckDuration is how long an acknowledgment stays visible.
const AckDuration = 2 * time.Second

// ErrWrite wraps every failed clipboard write.
var ErrWrite = errors.New("clipboard: write failed")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteAll(text string) error {
	return f(text)
}

type systemWriter struct{}

func (systemWriter) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// System returns the host clipboard.
func System() Writer {
	return systemWriter{}
}

type Options struct {
	Clock  schedule.Clock
	Logger *zap.Logger
	Ack    time.Duration

	// OnChange is called whenever the marker changes. It may run on the
	// clock's goroutine and must not block.
	OnChange func(copied string)
}

// Copier writes values to a clipboard and remembers which name was copied
// last. Only one name is ever marked at a time.
type Copier struct {
	w    Writer
	opts Options
	slot *schedule.Slot

	mu     sync.Mutex
	copied string
	seq    uint64
}

func NewCopier(w Writer, opts Options) *Copier {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Ack <= 0 {
		opts.Ack = AckDuration
	}
	return &Copier{w: w, opts: opts, slot: schedule.NewSlot(opts.Clock)}
}

// Copy writes value to the clipboard. On success the marker becomes name
// and clears after the ack window; a later Copy restarts the window. On
// failure the marker is left as it was.
func (c *Copier) Copy(value, name string) error {
	if c.w == nil {
		return fmt.Errorf("%w: no clipboard", ErrWrite)
	}
	if err := c.w.WriteAll(value); err != nil {
		c.opts.Logger.Warn("Failed to copy", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	seq := c.mark(name)
	c.slot.Schedule(c.opts.Ack, func() { c.clear(seq) })
	c.opts.Logger.Debug("Copied address", zap.String("name", name))
	return nil
}

// Copied returns the name of the most recently copied entry, or "".
func (c *Copier) Copied() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Close cancels the pending clear. The marker keeps its value.
func (c *Copier) Close() {
	c.slot.Cancel()
}

func (c *Copier) mark(name string) uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	changed := c.copied != name
	c.copied = name
	c.mu.Unlock()

	if changed {
		c.notify(name)
	}
	return seq
}

// clear resets the marker unless a newer copy happened after seq.
func (c *Copier) clear(seq uint64) {
	c.mu.Lock()
	if c.seq != seq || c.copied == "" {
		c.mu.Unlock()
		return
	}
	c.copied = ""
	c.mu.Unlock()

	c.notify("")
}

func (c *Copier) notify(copied string) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(copied)
	}
}
