package featureflag

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type fileFormat struct {
	Flags map[string]bool `json:"flags"`
}

// File serves flags from a JSON file of the form {"flags": {"key": true}}.
// The file is re-read whenever it changes; a broken edit keeps the last good set.
type File struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	flags map[string]bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFile loads path and starts watching it.
func NewFile(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{path: filepath.Clean(path), logger: logger, done: make(chan struct{})}
	if err := f.load(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create flag file watcher: %w", err)
	}
	// watch the directory; editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch flag file: %w", err)
	}
	f.watcher = watcher

	f.wg.Add(1)
	go f.watch()
	return f, nil
}

func (f *File) IsEnabled(_ context.Context, key string, defaultValue bool) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if v, ok := f.flags[key]; ok {
		return v
	}
	return defaultValue
}

// Close stops watching the file.
func (f *File) Close() error {
	select {
	case <-f.done:
		return nil
	default:
	}
	close(f.done)
	err := f.watcher.Close()
	f.wg.Wait()
	return err
}

func (f *File) watch() {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := f.load(); err != nil {
				f.logger.Warn("feature flag reload failed, keeping previous flags", "path", f.path, "error", err)
				continue
			}
			f.logger.Info("feature flags reloaded", "path", f.path)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Warn("feature flag watcher error", "path", f.path, "error", err)
		}
	}
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read flag file: %w", err)
	}
	var parsed fileFormat
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse flag file: %w", err)
	}
	if parsed.Flags == nil {
		parsed.Flags = map[string]bool{}
	}
	f.mu.Lock()
	f.flags = parsed.Flags
	f.mu.Unlock()
	return nil
}
