package app

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/gwiki/internal/ports"
)

// DefaultWatchDebounce is the quiet period after the last change before a re-run.
const DefaultWatchDebounce = 500 * time.Millisecond

// TitlesWatcher re-runs a batch whenever the desired-titles file changes.
type TitlesWatcher struct {
	path     string
	debounce time.Duration
	run      func(ctx context.Context)
	logger   ports.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending sync.WaitGroup
	running sync.Mutex
}

// NewTitlesWatcher creates a watcher for path calling run after changes settle.
func NewTitlesWatcher(path string, debounce time.Duration, run func(ctx context.Context), logger ports.Logger) *TitlesWatcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &TitlesWatcher{
		path:     path,
		debounce: debounce,
		run:      run,
		logger:   logger,
	}
}

// Run watches the titles file until ctx is cancelled. The parent directory is
// watched so editors that replace the file by rename are still seen.
func (w *TitlesWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	name := filepath.Base(w.path)

	w.logger.Info("watching titles file", ports.String("path", w.path))

	defer func() {
		w.mu.Lock()
		if w.timer != nil && w.timer.Stop() {
			w.pending.Done()
		}
		w.mu.Unlock()
		w.pending.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("titles file changed", ports.String("op", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("titles watcher error", ports.Err(err))
		}
	}
}

// schedule (re)arms the debounce timer. Runs never overlap.
func (w *TitlesWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}

	w.pending.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		if ctx.Err() != nil {
			return
		}
		w.running.Lock()
		defer w.running.Unlock()
		w.run(ctx)
	})
}
