package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// minWriteGap limits how often log writes trigger an early refresh.
const minWriteGap = 250 * time.Millisecond

// PublishFunc receives the result of every cycle. err wraps
// segment.ErrNoMatch while the user has not joined a game.
type PublishFunc func(snap *model.MatchSnapshot, err error)

// Run refreshes immediately, then every interval and whenever WatchPath is
// written to, until ctx is done. Cycles run one at a time on the calling
// goroutine. Cycle errors are published, not returned.
func (r *Refresher) Run(ctx context.Context, interval time.Duration, publish PublishFunc) error {
	if interval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	g, gctx := errgroup.WithContext(ctx)
	wake := make(chan struct{}, 1)
	if r.WatchPath != "" {
		g.Go(func() error {
			r.watch(gctx, r.WatchPath, wake)
			return nil
		})
	}
	g.Go(func() error {
		return r.loop(gctx, interval, wake, publish)
	})

	return g.Wait()
}

func (r *Refresher) loop(ctx context.Context, interval time.Duration, wake <-chan struct{}, publish PublishFunc) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last time.Time
	cycle := func() {
		last = time.Now()
		snap, err := r.Refresh(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			r.logger().Debug("Refresh cycle failed", slog.String("error", err.Error()))
		}
		publish(snap, err)
	}

	cycle()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cycle()
		case <-wake:
			if time.Since(last) >= minWriteGap {
				cycle()
			}
		}
	}
}

// watch signals wake on every write to path. The parent directory is watched
// so the log can be recreated or rotated. When the watcher cannot be set up
// the loop falls back to the ticker.
func (r *Refresher) watch(ctx context.Context, path string, wake chan<- struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger().Warn("File watcher unavailable", slog.String("error", err.Error()))
		return
	}
	defer func() {
		if errClose := watcher.Close(); errClose != nil {
			r.logger().Error("Failed to close watcher cleanly", slog.String("error", errClose.Error()))
		}
	}()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		r.logger().Warn("Failed to add watch dir", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case wake <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger().Warn("Watcher error", slog.String("error", err.Error()))
		}
	}
}
