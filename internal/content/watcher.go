package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bassista/go_folio/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// StartWatcher reloads the content file into holder whenever it changes.
// The parent directory is watched so editors that save via temp file and
// rename are still seen. Invalid edits are logged and the previous resume
// stays in place. The goroutine exits when ctx is cancelled.
func (r *Repository) StartWatcher(ctx context.Context, holder *Holder) error {
	if r.path == "" {
		return errors.New("built-in content cannot be watched")
	}
	if holder == nil {
		return errors.New("content holder is required")
	}
	log := logger.WithComponent("content")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	reload := func() {
		doc, err := r.Load()
		if err != nil {
			log.WithError(err).Warn("Content reload failed, keeping previous version")
			return
		}
		holder.Replace(doc)
		log.WithField("path", r.path).Info("Content reloaded")
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, reload)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				// a Remove or Rename is usually followed by a Create from an atomic save
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Content watcher error")
			}
		}
	}()

	log.WithField("path", r.path).Info("Watching content file")
	return nil
}
