// Package watch reports when a table definition file changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit for one save.
const DefaultDebounce = 50 * time.Millisecond

// Watcher watches a single file. The parent directory is watched so that
// editors which replace the file on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	changes chan struct{}
	errors  chan error

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New starts watching path. Close must be called to release the watcher.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		errors:   make(chan error, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changes receives one value per debounced burst of writes. Bursts that
// arrive before the previous value is consumed are merged into it. The
// channel is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors receives watcher errors. Errors are dropped while one is pending.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	timer := time.NewTimer(0)
	<-timer.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			timer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
