package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// Watcher reloads a ConfigStore when its file changes. The directory is
// watched rather than the file, since editors often replace the file.
type Watcher struct {
	store    *ConfigStore
	watcher  *fsnotify.Watcher
	onReload func()
}

// NewWatcher starts watching store's directory. onReload, if not nil, runs
// after each successful reload.
func NewWatcher(store *ConfigStore, onReload func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{store: store, watcher: fw, onReload: onReload}, nil
}

// Run handles events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		// Keep the previous values; a half-written file is common mid-save.
		logger.Warn("config reload failed: %v", err)
		return
	}
	logger.Debug("config reloaded from %s", w.store.Path())
	if w.onReload != nil {
		w.onReload()
	}
}
