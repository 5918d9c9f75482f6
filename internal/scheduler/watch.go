package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/utils"
)

// watchFiles signals on the returned channel when any of paths is written or
// recreated, once events have been quiet for debounce. Parent directories are
// watched so editors that save by rename are seen. The watcher is released
// when ctx is done.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, log logger.Logger) (<-chan struct{}, error) {
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			utils.Close(w)
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer utils.Close(w)

		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(ev.Name)] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				log.Debug("homepage file changed", logger.String("file", ev.Name), logger.String("op", ev.Op.String()))
				timer.Reset(debounce)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher error", logger.Error(err))

			case <-timer.C:
				select {
				case changes <- struct{}{}:
				default: // an import is already queued
				}
			}
		}
	}()

	return changes, nil
}
