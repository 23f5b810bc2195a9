package frameset

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher is a Poller that also listens for file-system events. An event
// only marks the set dirty; the rescan itself still happens inside Poll, on
// the caller's goroutine.
type Watcher struct {
	*Poller

	fsw    *fsnotify.Watcher
	dirty  atomic.Bool
	done   chan struct{}
	logger *log.Logger
}

// NewWatcher starts watching dir.
func NewWatcher(dir string, exts []string, interval time.Duration, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	w := &Watcher{
		Poller: NewPoller(dir, exts, interval),
		fsw:    fsw,
		done:   make(chan struct{}),
		logger: logger,
	}
	if dir != "" {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

// SetDir moves the watch to a new directory. On failure the watcher keeps
// following the previous one.
func (w *Watcher) SetDir(dir string) error {
	old := w.Dir()
	if dir == old {
		return w.Poller.SetDir(dir)
	}
	if dir != "" {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	if old != "" {
		_ = w.fsw.Remove(old)
	}
	return w.Poller.SetDir(dir)
}

// Poll rescans at once when an event arrived since the last call, and
// falls back to interval polling otherwise.
func (w *Watcher) Poll(now time.Time) ([]string, bool, error) {
	if w.Dir() != "" && w.dirty.Swap(false) {
		return w.rescan(now, true)
	}
	return w.Poller.Poll(now)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Write) {
				w.dirty.Store(true)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}
