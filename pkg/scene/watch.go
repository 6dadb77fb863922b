package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the scene file at path whenever it changes and passes each
// valid config to onChange. Invalid files are logged and skipped. Watch
// blocks until ctx is done; onChange runs on the watcher goroutine.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch scene: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file on save.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("scene watcher", "err", err)
		case <-timer.C:
			cfg, err := Load(path)
			if err != nil {
				Logger().Warn("scene reload failed", "path", path, "err", err)
				continue
			}
			onChange(cfg)
		}
	}
}
