package browse

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"image-browser/internal/logging"
	"image-browser/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches bursts of filesystem events into one rescan.
const watchDebounce = 500 * time.Millisecond

// Watch monitors the open directory for external changes and rescans
// it when files appear, vanish, or move. It blocks until ctx is done
// and is meant to run in its own goroutine. A rescan replaces the
// collection, so ids from before an external change are not stable
// across it.
func (s *Session) Watch(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Error("browse: failed to create file watcher: %v", err)
		metrics.WatcherErrors.Inc()
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Error("browse: failed to close file watcher: %v", err)
		}
	}()

	watched := ""
	var debounce *time.Timer
	var debounceC <-chan time.Time

	rewatch := func() {
		dir := s.Dir()
		if dir == watched {
			return
		}
		if watched != "" {
			if err := watcher.Remove(watched); err != nil {
				logging.Debug("browse: removing watch on %s: %v", watched, err)
			}
		}
		watched = ""
		if dir == "" {
			return
		}
		if err := watcher.Add(dir); err != nil {
			logging.Warn("browse: failed to watch %s: %v", dir, err)
			metrics.WatcherErrors.Inc()
			return
		}
		watched = dir
		logging.Debug("browse: watching %s", dir)
	}
	rewatch()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			// Follow the session if OpenFolder changed directories.
			rewatch()

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.relevantEvent(event) {
				continue
			}
			metrics.WatcherEventsTotal.WithLabelValues(eventType(event.Op)).Inc()
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(watchDebounce)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			dir := s.Dir()
			if dir == "" {
				continue
			}
			logging.Info("browse: external change detected in %s, rescanning", dir)
			s.OpenFolder(ctx, dir)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("browse: watcher error: %v", err)
			metrics.WatcherErrors.Inc()
		}
	}
}

// relevantEvent filters out hidden files and files the collection would
// never show.
func (s *Session) relevantEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if s.opts.Extensions != nil && !s.opts.Extensions.Matches(name) {
		return false
	}
	return true
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}
