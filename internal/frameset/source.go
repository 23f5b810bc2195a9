package frameset

import (
	"time"

	"github.com/charmbracelet/log"
)

// Source provides the frame set of a directory that can change over time.
// Implementations include Poller (interval re-scan) and Watcher (fsnotify).
type Source interface {
	// Poll returns a new frame set when the directory changed since the
	// previous call.
	Poll(now time.Time) (frames []string, changed bool, err error)

	// Dir returns the directory currently watched.
	Dir() string

	// SetDir switches to another directory; the next Poll reports its set.
	SetDir(dir string) error

	// Close releases any resources held by the source.
	Close() error
}

// Open creates a Source for dir. With watch set, file-system events trigger
// immediate re-scans; if the watcher cannot be created it falls back to
// plain polling.
func Open(dir string, exts []string, interval time.Duration, watch bool, logger *log.Logger) Source {
	if watch {
		w, err := NewWatcher(dir, exts, interval, logger)
		if err == nil {
			return w
		}
		if logger != nil {
			logger.Warn("falling back to polling", "err", err)
		}
	}
	return NewPoller(dir, exts, interval)
}
