package twconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

type watchOptions struct {
	debounce time.Duration
	logger   zerolog.Logger
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

// WithDebounce sets the quiet period after the last change before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) { o.debounce = d }
}

// WithLogger sets the logger for watcher events.
func WithLogger(l zerolog.Logger) WatchOption {
	return func(o *watchOptions) { o.logger = l }
}

// Watch loads path, calls fn with the result, and calls it again after every
// change to the file until ctx is done. fn runs on the watcher goroutine.
//
// The parent directory is watched so that atomic replacements (rename over
// the file) are seen.
func Watch(ctx context.Context, path string, fn func(*Config, error), opts ...WatchOption) error {
	o := watchOptions{debounce: DefaultDebounce, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := o.logger.With().Str("path", path).Logger()
	logger.Info().Str("event", "watch.started").Msg("watching config file")

	reload := func() {
		c, err := Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("event", "watch.reload_failed").Msg("config reload failed")
		} else {
			logger.Info().Str("event", "watch.reloaded").Msg("config reloaded")
		}
		fn(c, err)
	}
	reload()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("event", "watch.stopped").Msg("config watcher stopped")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Msg("config file changed")
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				timer.Reset(o.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str("event", "watch.error").Msg("watcher error")

		case <-fire:
			fire = nil
			reload()
		}
	}
}
