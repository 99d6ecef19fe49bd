package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ReloadCallback receives a freshly loaded and validated configuration.
type ReloadCallback func(cfg *Config)

// Watcher monitors the config file and reloads on change. A reload hands
// the callback a whole new Config; nothing is mutated in place, so
// consumers can rebuild their profile registry atomically.
type Watcher struct {
	watcher   *fsnotify.Watcher
	loader    *Loader
	validator *Validator
	onReload  ReloadCallback
	debounce  time.Duration
	done      chan struct{}
	stopOnce  sync.Once

	timerMu sync.Mutex
	timer   *time.Timer
}

// NewWatcher creates a config file watcher.
func NewWatcher(loader *Loader, onReload ReloadCallback) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher:   fsWatcher,
		loader:    loader,
		validator: NewValidator(),
		onReload:  onReload,
		debounce:  200 * time.Millisecond,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the config file's directory. Watching the
// directory instead of the file survives editors that replace the file
// on save.
func (w *Watcher) Start() error {
	path, err := w.loader.Path()
	if err != nil {
		return err
	}

	if err := w.watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go w.loop(path)

	log.Info().Str("path", path).Msg("Config watcher started")
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop(path string) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Config watcher error")
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Config reload failed, keeping previous config")
		return
	}
	if err := w.validator.Validate(cfg); err != nil {
		log.Warn().Err(err).Msg("Reloaded config is invalid, keeping previous config")
		return
	}

	log.Info().Msg("Config reloaded")
	w.onReload(cfg)
}
