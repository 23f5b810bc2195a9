package frameset

import (
	"slices"
	"time"
)

// DefaultPollInterval is how often a directory is re-scanned.
const DefaultPollInterval = time.Second

// Poller re-scans a directory at a bounded interval and reports a new frame
// set when the number of frames changed. It satisfies playback.Provider.
type Poller struct {
	dir        string
	extensions []string
	interval   time.Duration

	lastCheck time.Time
	last      []string
	primed    bool
}

// NewPoller creates a poller for dir. An empty dir polls nothing until
// SetDir is called.
func NewPoller(dir string, exts []string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		dir:        dir,
		extensions: NormalizeExtensions(exts),
		interval:   interval,
	}
}

// Dir returns the directory being polled.
func (p *Poller) Dir() string {
	return p.dir
}

// SetDir points the poller at a new directory. The next Poll scans
// immediately and always reports the new set.
func (p *Poller) SetDir(dir string) error {
	p.dir = dir
	p.primed = false
	p.last = nil
	p.lastCheck = time.Time{}
	return nil
}

// Poll scans the directory if the interval has elapsed.
func (p *Poller) Poll(now time.Time) ([]string, bool, error) {
	if p.dir == "" {
		return nil, false, nil
	}
	if p.primed && now.Sub(p.lastCheck) < p.interval {
		return nil, false, nil
	}
	return p.rescan(now, false)
}

// rescan lists the directory. With exact set, any difference in the list
// counts as a change; otherwise only the frame count is compared.
func (p *Poller) rescan(now time.Time, exact bool) ([]string, bool, error) {
	p.lastCheck = now
	paths, err := Scan(p.dir, p.extensions)
	if err != nil {
		return nil, false, err
	}

	if p.primed {
		if exact && slices.Equal(paths, p.last) {
			return nil, false, nil
		}
		if !exact && len(paths) == len(p.last) {
			return nil, false, nil
		}
	}

	p.primed = true
	p.last = paths
	return paths, true, nil
}

// Close is a no-op; a Poller holds no resources.
func (p *Poller) Close() error {
	return nil
}
