package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchSite drops the cached profile as soon as data.yaml changes on disk.
// The directory is watched rather than the file so editors that replace the
// file on save are seen too. The watcher stops with ctx.
func (s *Server) watchSite(ctx context.Context) error {
	if s.cfg.SiteDir == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("site watcher: %w", err)
	}
	if err := w.Add(s.cfg.SiteDir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", s.cfg.SiteDir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != dataFile {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					s.source.Invalidate()
					s.log.Info("Profile data changed", zap.String("op", ev.Op.String()))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("Site watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
