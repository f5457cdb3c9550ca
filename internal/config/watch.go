package config

import (
	"fmt"
	"path/filepath"

	fsnotify "github.com/fsnotify/fsnotify"

	"keymap/internal/system"
)

// Watcher signals changes to one file. It watches the parent directory so
// editors that save by rename are seen too.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	ch   chan struct{}
}

// Watch starts watching path. The directory must exist.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	cw := &Watcher{w: w, path: abs, ch: make(chan struct{}, 1)}
	go cw.loop()
	return cw, nil
}

func (cw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || ev.Op == fsnotify.Chmod {
				continue
			}
			// coalesce: one pending signal is enough
			select {
			case cw.ch <- struct{}{}:
			default:
			}
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			system.Logger.Warn("config watcher", "err", err)
		}
	}
}

// Changes delivers at most one pending notification at a time.
func (cw *Watcher) Changes() <-chan struct{} { return cw.ch }

// Close stops watching.
func (cw *Watcher) Close() error { return cw.w.Close() }
