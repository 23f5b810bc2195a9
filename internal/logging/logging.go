// Package logging builds the application logger. The interactive player
// owns the terminal, so it logs to a file; the other commands log to
// stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFile is the log file used by the player when none is configured.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), "frame-player.log")
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}

// OpenFile returns a logger appending to path, or to DefaultFile when path
// is empty. The returned closer closes the file.
func OpenFile(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultFile()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
