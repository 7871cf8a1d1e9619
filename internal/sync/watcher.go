package sync

import (
	"fmt"
	"log/slog"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MikeBiancalana/widescreen/internal/config"
)

// DebounceDelay collapses the burst of events an editor produces when saving
const DebounceDelay = 100 * time.Millisecond

// SettingsChangeEvent carries freshly loaded settings. Err is set when the
// file changed but could not be loaded; Settings then holds the defaults.
type SettingsChangeEvent struct {
	FilePath string
	Settings config.Settings
	Err      error
}

// Watcher watches the settings file for changes
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *slog.Logger

	mu            gosync.Mutex
	changes       chan SettingsChangeEvent
	done          chan struct{}
	stopped       bool
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for the settings file at path
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    path,
		logger:  logger,
		changes: make(chan SettingsChangeEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the directory holding the settings file. The
// directory is watched rather than the file so atomic renames are seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher and closes the changes channel
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.done)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	// Closed outside the lock: watch may be waiting on it to deliver an event
	w.watcher.Close()

	w.mu.Lock()
	close(w.changes)
	w.mu.Unlock()
}

// Changes returns the channel for settings change notifications
func (w *Watcher) Changes() <-chan SettingsChangeEvent {
	return w.changes
}

// watch is the main event loop
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(DebounceDelay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// reload reads the settings file after the debounce delay and notifies listeners
func (w *Watcher) reload() {
	settings, err := config.LoadSettings(w.path)
	if err != nil {
		w.logger.Error("failed to reload settings", "error", err, "path", w.path)
	} else {
		w.logger.Info("settings reloaded", "path", w.path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	select {
	case w.changes <- SettingsChangeEvent{FilePath: w.path, Settings: settings, Err: err}:
	default:
		w.logger.Warn("settings change dropped", "path", w.path)
	}
}
