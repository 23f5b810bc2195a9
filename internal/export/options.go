package export

import (
	"time"

	"github.com/Trailblaze-work/frame-player/internal/output"
	"github.com/Trailblaze-work/frame-player/internal/playback"
)

// TimingMode controls how timing is applied to exported frames.
type TimingMode string

const (
	TimingRealtime   TimingMode = "realtime"   // frame time from the playback speed
	TimingCompressed TimingMode = "compressed" // fixed BaseFPS, ignoring speed
	TimingFast       TimingMode = "fast"       // 2x the playback speed
	TimingInstant    TimingMode = "instant"    // minimal delays
)

// ParseTimingMode returns the mode named s, or false if it is unknown.
func ParseTimingMode(s string) (TimingMode, bool) {
	switch m := TimingMode(s); m {
	case TimingRealtime, TimingCompressed, TimingFast, TimingInstant:
		return m, true
	}
	return "", false
}

// Options configures the export.
type Options struct {
	TimingMode TimingMode
	Width      int // terminal columns
	Height     int // terminal rows
	Output     string
	Policy     output.AspectPolicy
	Title      string
	Timestamp  time.Time
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		TimingMode: TimingRealtime,
		Width:      120,
		Height:     40,
		Policy:     output.Fit,
	}
}

// FrameDelay returns how long a frame stays on screen at the given speed.
func (o Options) FrameDelay(speed float64) time.Duration {
	base := time.Second / playback.BaseFPS
	switch o.TimingMode {
	case TimingRealtime:
		if d, ok := playback.FrameTime(speed); ok {
			return d
		}
		return base
	case TimingFast:
		if d, ok := playback.FrameTime(speed); ok {
			return d / 2
		}
		return base / 2
	case TimingInstant:
		return 10 * time.Millisecond
	default:
		return base
	}
}
