package playback

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// State is the complete transport state of one playback session. It is a
// value type: every operation returns an updated copy and never mutates the
// receiver. Frames is shared between copies and must not be modified.
type State struct {
	Frames    []string // ordered frame paths
	Start     int      // first frame of the playback range, 0-based
	End       int      // last frame of the playback range, 0-based inclusive
	Index     int      // cursor
	Direction Direction
	Loop      LoopMode
	Slider    float64 // speed slider value in [0, MaxSlider]
	Playing   bool
	Black     bool // output suppressed, playback continues

	lastAdvance time.Time
}

// New returns a stopped state over frames at 1x speed with the full range selected.
func New(frames []string) State {
	s := State{Slider: SpeedToSlider(1)}
	return s.SetFrames(frames)
}

// Len is the number of frames in the frame set.
func (s State) Len() int {
	return len(s.Frames)
}

// Speed is the playback multiplier derived from the slider.
func (s State) Speed() float64 {
	return SliderToSpeed(s.Slider)
}

// SetFrames replaces the frame set. The range resets to the whole set and
// the cursor is clamped into it; direction, loop mode and speed persist.
func (s State) SetFrames(frames []string) State {
	s.Frames = frames
	if len(frames) == 0 {
		s.Start, s.End, s.Index = 0, 0, 0
		return s
	}
	s.Start = 0
	s.End = len(frames) - 1
	s.Index = clamp(s.Index, s.Start, s.End)
	return s
}

// Clamped pulls the range and cursor back inside the frame set. It is
// applied before any frame is surfaced, so an external mutation never
// produces an out-of-range request.
func (s State) Clamped() State {
	n := len(s.Frames)
	if n == 0 {
		s.Start, s.End, s.Index = 0, 0, 0
		return s
	}
	s.Start = clamp(s.Start, 0, n-1)
	s.End = clamp(s.End, s.Start, n-1)
	s.Index = clamp(s.Index, s.Start, s.End)
	return s
}

// Current returns the path of the frame under the cursor.
func (s State) Current() (string, bool) {
	if len(s.Frames) == 0 {
		return "", false
	}
	c := s.Clamped()
	return c.Frames[c.Index], true
}

// Label is the 1-based frame indicator shown in the UI, e.g. "3/120".
func (s State) Label() string {
	if len(s.Frames) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", s.Clamped().Index+1, len(s.Frames))
}

// Advance moves the cursor by one frame when playing and at least one frame
// time has passed since the previous advancement. The advancement time is
// recorded even when the index does not move, so a stalled tick never
// triggers a burst of catch-up frames.
func (s State) Advance(now time.Time) (State, bool) {
	if !s.Playing || len(s.Frames) == 0 {
		return s, false
	}
	frameTime, ok := FrameTime(s.Speed())
	if !ok {
		return s, false
	}
	if s.lastAdvance.IsZero() {
		s.lastAdvance = now
		return s, false
	}
	if now.Sub(s.lastAdvance) < frameTime {
		return s, false
	}

	prev := s.Clamped().Index
	s = s.Step()
	s.lastAdvance = now
	return s, s.Index != prev
}

// Step performs one advancement following the direction and loop mode,
// ignoring timing. A single-frame range holds still.
func (s State) Step() State {
	if len(s.Frames) == 0 {
		return s
	}
	s = s.Clamped()
	if s.Start == s.End {
		return s
	}

	switch s.Direction {
	case Forward:
		s.Index++
		if s.Index > s.End {
			if s.Loop == PingPong {
				s.Index = max(s.Start, s.End-1)
				s.Direction = Backward
			} else {
				s.Index = s.Start
			}
		}
	case Backward:
		s.Index--
		if s.Index < s.Start {
			if s.Loop == PingPong {
				s.Index = min(s.End, s.Start+1)
				s.Direction = Forward
			} else {
				s.Index = s.End
			}
		}
	}
	return s
}

// StepBy moves the cursor delta frames, wrapping inside the range. Unlike
// Step it never touches the direction.
func (s State) StepBy(delta int) State {
	if len(s.Frames) == 0 {
		return s
	}
	s = s.Clamped()
	span := s.End - s.Start + 1
	offset := ((s.Index-s.Start+delta)%span + span) % span
	s.Index = s.Start + offset
	return s
}

// SetRange applies 1-based start/end inputs. The end never precedes the
// start; a cursor outside the new range snaps to the start.
func (s State) SetRange(startInput, endInput int) State {
	n := len(s.Frames)
	if n == 0 {
		return s
	}
	s.Start = clamp(startInput-1, 0, n-1)
	s.End = clamp(endInput-1, s.Start, n-1)
	if s.Index < s.Start || s.Index > s.End {
		s.Index = s.Start
	}
	return s
}

// SetLastFrames selects the final count frames and moves the cursor to the
// first of them.
func (s State) SetLastFrames(count int) State {
	n := len(s.Frames)
	if n == 0 || count <= 0 {
		return s
	}
	s.Start = max(0, n-count)
	s.End = n - 1
	s.Index = s.Start
	return s
}

// ScrubIndex maps a normalized position in [0,1] onto a frame in the range.
func (s State) ScrubIndex(p float64) int {
	c := s.Clamped()
	p = math.Max(0, math.Min(1, p))
	idx := c.Start + int(math.Round(p*float64(c.End-c.Start)))
	return clamp(idx, c.Start, c.End)
}

// ScrubPosition is the cursor's normalized position inside the range.
func (s State) ScrubPosition() float64 {
	c := s.Clamped()
	if c.End <= c.Start {
		return 0
	}
	return float64(c.Index-c.Start) / float64(c.End-c.Start)
}

// Scrub moves the cursor to a normalized position in the range.
func (s State) Scrub(p float64) State {
	if len(s.Frames) == 0 {
		return s
	}
	s = s.Clamped()
	s.Index = s.ScrubIndex(p)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseRange reads a 1-based range typed as "start-end" (also accepting
// commas, colons or spaces as the separator).
func ParseRange(text string) (start, end int, err error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == ':'
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("range must look like start-end, got %q", text)
	}
	start, err1 := strconv.Atoi(fields[0])
	end, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || start < 1 || end < 1 {
		return 0, 0, fmt.Errorf("invalid range %q", text)
	}
	return start, end, nil
}
