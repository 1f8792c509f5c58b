// Package hotkey registers the global capture shortcut.
package hotkey

import (
	"context"
	"fmt"

	"golang.design/x/hotkey"

	"traynote/internal/logs"
)

// Listen registers the capture shortcut and calls fn on every key press
// until ctx is cancelled. It returns an error only if registration fails;
// callers treat that as "no hotkey" and carry on.
func Listen(ctx context.Context, fn func()) error {
	hk := hotkey.New(captureModifiers, hotkey.KeyN)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("registering %s: %w", Label, err)
	}
	logs.Logger.Info().Str("hotkey", Label).Msg("global hotkey registered")

	go func() {
		defer func() {
			if err := hk.Unregister(); err != nil {
				logs.Logger.Warn().Err(err).Msg("unregistering hotkey")
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-hk.Keydown():
				fn()
			}
		}
	}()
	return nil
}
