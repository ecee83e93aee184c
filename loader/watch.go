package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/speakeasy-api/lintconfig/fragment"
	xlog "github.com/speakeasy-api/lintconfig/internal/log"
)

// WatchFunc receives the outcome of every load performed by Watch.
type WatchFunc func(fragments []*fragment.Fragment, err error)

// Watch loads paths and passes the result to fn, then reloads and calls fn again whenever one of the
// files changes, until ctx is done. Changes arriving within opts.Debounce of each other trigger a
// single reload. fn is never called concurrently.
//
// Paths are operating system paths; the parent directories are watched so editors that replace files
// on save are still noticed.
func Watch(ctx context.Context, paths []string, opts Options, fn WatchFunc) error {
	opts = opts.withDefaults()
	logger := xlog.WithComponent(*opts.Logger, "watcher")

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == StdinPath {
			return fmt.Errorf("cannot watch stdin")
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	logger.Debug().Str(xlog.FieldEvent, "watch.started").Int(xlog.FieldCount, len(targets)).Msg("watching fragment files")
	fn(Load(ctx, paths, opts))

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
			logger.Debug().Str(xlog.FieldEvent, "watch.stopped").Msg("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := targets[abs]; !watched {
				continue
			}

			logger.Debug().
				Str(xlog.FieldEvent, "watch.changed").
				Str(xlog.FieldFile, event.Name).
				Str("op", event.Op.String()).
				Msg("fragment file changed")

			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(Load(ctx, paths, opts))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str(xlog.FieldEvent, "watch.error").Msg("watcher error")
		}
	}
}
