package configwatcher

import (
	"career_coach_backend/pkg/logger"
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader is called with the watched path after writes have settled.
type Reloader func(path string) error

const debounce = time.Second

// WatchFile calls reload after each burst of writes to path until ctx is done.
// The parent directory is watched so editors that replace the file atomically still trigger.
func WatchFile(ctx context.Context, path string, reload Reloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					timer.Reset(debounce)
				}
			case <-timer.C:
				if err := reload(absPath); err != nil {
					logger.Log.Error("Failed to reload watched file", zap.String("path", absPath), zap.Error(err))
					continue
				}
				logger.Log.Info("Reloaded watched file", zap.String("path", absPath))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.Error("File watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
