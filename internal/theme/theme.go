// Package theme holds the light/dark mode for a process (or a single web
// request) and persists the choice in a preference store.
package theme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// PreferenceKey is the store key of the persisted mode.
const PreferenceKey = "theme"

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	return string(m)
}

// Store persists preferences as string key/value pairs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Context is the current mode plus where it is persisted.
type Context struct {
	mu    sync.RWMutex
	store Store
	mode  Mode
	log   *zap.Logger
}

// Init reads the persisted mode. A missing, unreadable or invalid value
// yields fallback.
func Init(ctx context.Context, store Store, fallback Mode, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := ParseMode(string(fallback)); !ok {
		fallback = Light
	}

	c := &Context{store: store, mode: fallback, log: log}
	if store == nil {
		return c
	}

	v, ok, err := store.Get(ctx, PreferenceKey)
	switch {
	case err != nil:
		log.Warn("Failed to read theme preference", zap.Error(err))
	case !ok:
	default:
		if m, valid := ParseMode(v); valid {
			c.mode = m
		} else {
			log.Warn("Ignoring invalid theme preference", zap.String("value", v))
		}
	}
	return c
}

func (c *Context) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Palette returns the color tokens of the current mode.
func (c *Context) Palette() Palette {
	return PaletteFor(c.Mode())
}

// Toggle flips the mode and persists it. The new mode applies even when
// persisting fails; the error is returned.
func (c *Context) Toggle(ctx context.Context) (Mode, error) {
	c.mu.Lock()
	c.mode = c.mode.Toggle()
	mode := c.mode
	c.mu.Unlock()

	if c.store == nil {
		return mode, nil
	}
	if err := c.store.Set(ctx, PreferenceKey, string(mode)); err != nil {
		c.log.Warn("Failed to persist theme preference", zap.String("mode", string(mode)), zap.Error(err))
		return mode, fmt.Errorf("persist theme: %w", err)
	}
	return mode, nil
}
