package folio

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor emits on save.
const reloadDelay = 200 * time.Millisecond

// watch reloads the content whenever a file under ContentDir changes. It
// returns when ctx is canceled.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, a.Config.ContentDir); err != nil {
		return fmt.Errorf("watch %s: %w", a.Config.ContentDir, err)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories (page bundles) need their own watch.
				_ = addTree(watcher, event.Name)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				a.logger.Debug("content changed", "file", event.Name, "op", event.Op.String())
				timer.Reset(reloadDelay)
			}
		case <-timer.C:
			if err := a.Reload(ctx); err != nil {
				a.logger.Error("reload failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("file watcher error", "error", err)
		}
	}
}

// addTree watches root and every non-hidden directory below it. Files are
// ignored.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
