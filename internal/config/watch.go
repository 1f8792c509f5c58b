package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"traynote/internal/logs"
)

const watchDebounce = 50 * time.Millisecond

// Watch reloads the store whenever the settings file changes on disk and
// calls onChange with the new effective settings. It returns once the
// watcher is running; the watcher stops when ctx is cancelled.
//
// The directory is watched rather than the file because settings are
// replaced by rename.
func (s *Store) Watch(ctx context.Context, onChange func(Settings)) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	go s.watchLoop(ctx, watcher, onChange)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(Settings)) {
	defer watcher.Close()

	target := s.Path()
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Warn().Err(err).Msg("settings watcher error")

		case <-timer.C:
			changed, err := s.Reload()
			if err != nil {
				logs.Logger.Warn().Err(err).Str("path", target).Msg("reloading settings")
				continue
			}
			if changed {
				logs.Logger.Info().Str("path", target).Msg("settings reloaded")
				if onChange != nil {
					onChange(s.Settings())
				}
			}
		}
	}
}
