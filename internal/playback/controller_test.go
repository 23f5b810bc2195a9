package playback

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type fakeProvider struct {
	sets [][]string
	err  error
	call int
}

func (p *fakeProvider) Poll(time.Time) ([]string, bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}
	if p.call >= len(p.sets) {
		return nil, false, nil
	}
	set := p.sets[p.call]
	p.call++
	return set, true, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestController_TickLoadsFromProvider(t *testing.T) {
	p := &fakeProvider{sets: [][]string{frames(4)}}
	c := NewController(WithProvider(p), WithLogger(quietLogger()))

	var changes []Change
	c.Subscribe(func(ch Change) { changes = append(changes, ch) })

	ch := c.Tick(time.Now())
	if !ch.FramesChanged || !ch.IndexChanged {
		t.Fatalf("expected frames and index change, got %+v", ch)
	}
	if c.State().Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.State().Len())
	}
	if len(changes) != 1 {
		t.Errorf("listener called %d times, want 1", len(changes))
	}

	// Nothing changes on an idle tick, so listeners stay quiet.
	c.Tick(time.Now())
	if len(changes) != 1 {
		t.Errorf("listener called %d times after idle tick, want 1", len(changes))
	}
}

func TestController_ProviderErrorKeepsState(t *testing.T) {
	p := &fakeProvider{err: errors.New("disk gone")}
	c := NewController(WithProvider(p), WithLogger(quietLogger()), WithState(New(frames(3))))

	ch := c.Tick(time.Now())
	if ch.FramesChanged {
		t.Error("error should not reload frames")
	}
	if c.State().Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.State().Len())
	}
}

func TestController_DispatchAndAdvance(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewController(WithLogger(quietLogger()))
	c.Load(frames(10))

	c.Dispatch(SetRange(3, 8), base)
	c.Dispatch(SetLoopMode(PingPong), base)
	c.Dispatch(TogglePlay(), base)

	var seen []int
	c.Subscribe(func(ch Change) {
		if ch.IndexChanged {
			seen = append(seen, ch.State.Index)
		}
	})

	now := base
	for i := 0; i < 8; i++ {
		now = now.Add(100 * time.Millisecond)
		c.Tick(now)
	}

	want := []int{3, 4, 5, 6, 7, 6, 5, 4}
	if len(seen) != len(want) {
		t.Fatalf("seen %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen %v, want %v", seen, want)
		}
	}
}

func TestController_DispatchReportsIndexChange(t *testing.T) {
	c := NewController(WithLogger(quietLogger()))
	c.Load(frames(20))

	ch := c.Dispatch(SetLastFrames(5), time.Now())
	if !ch.IndexChanged || ch.State.Index != 15 {
		t.Errorf("got %+v, want index change to 15", ch)
	}

	ch = c.Dispatch(ToggleDirection(), time.Now())
	if ch.IndexChanged {
		t.Error("direction toggle should not move the cursor")
	}
	if ch.State.Direction != Backward {
		t.Errorf("Direction = %v, want backward", ch.State.Direction)
	}
}

func TestApply_TogglePlayRestoresSpeed(t *testing.T) {
	s := New(frames(3)).Apply(SetSpeed(0), time.Now())
	s = s.Apply(TogglePlay(), time.Now())
	if !s.Playing {
		t.Fatal("expected playing")
	}
	if got := s.Speed(); got < 0.999 || got > 1.001 {
		t.Errorf("Speed() = %v, want 1", got)
	}
}

func TestApply_SpeedPresetDerivesSlider(t *testing.T) {
	for _, preset := range SpeedPresets {
		s := New(frames(3)).Apply(SetSpeedPreset(preset), time.Now())
		if got := s.Speed(); got < preset-1e-9 || got > preset+1e-9 {
			t.Errorf("preset %v: Speed() = %v", preset, got)
		}
	}
}

func TestApply_NudgeSpeedClamps(t *testing.T) {
	s := New(frames(3)).Apply(NudgeSpeed(100), time.Now())
	if s.Slider != MaxSlider {
		t.Errorf("Slider = %v, want %v", s.Slider, MaxSlider)
	}
	s = s.Apply(NudgeSpeed(-100), time.Now())
	if s.Slider != 0 {
		t.Errorf("Slider = %v, want 0", s.Slider)
	}
}

func TestCommandKindNames(t *testing.T) {
	for kind, name := range commandNames {
		got, ok := ParseCommandKind(name)
		if !ok || got != kind {
			t.Errorf("ParseCommandKind(%q) = %v, %v", name, got, ok)
		}
		if kind.String() != name {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), name)
		}
	}
	if _, ok := ParseCommandKind("explode"); ok {
		t.Error("unknown name should not parse")
	}
}
