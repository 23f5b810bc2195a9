package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

func frames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/frames/%03d.png", i)
	}
	return out
}

func TestRenderHeader_ContainsTitleAndLabel(t *testing.T) {
	output := RenderHeader("/home/user/shots", "3/10", 80)
	if !strings.Contains(output, "frame-player") {
		t.Error("header should contain the app title")
	}
	if !strings.Contains(output, "3/10") {
		t.Error("header should contain the frame label")
	}
	if !strings.Contains(output, "/home/user/shots") {
		t.Error("header should contain the folder")
	}
}

func TestRenderHeader_NoFolder(t *testing.T) {
	output := RenderHeader("", "0/0", 80)
	if !strings.Contains(output, "press o") {
		t.Error("header should hint how to open a folder")
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path     string
		width    int
		expected string
	}{
		{"/a/b", 10, "/a/b"},
		{"/home/user/frames", 8, "…/frames"},
		{"/home/user/frames", 0, ""},
		{"/x/y", 1, "…"},
	}

	for _, tt := range tests {
		got := TruncatePath(tt.path, tt.width)
		if got != tt.expected {
			t.Errorf("TruncatePath(%q, %d) = %q, want %q", tt.path, tt.width, got, tt.expected)
		}
	}
}

func TestRenderTimeline_Boundaries(t *testing.T) {
	st := playback.New(frames(10))

	first := RenderTimeline(st, 80)
	if first == "" {
		t.Fatal("expected non-empty timeline for first frame")
	}

	st.Index = 9
	last := RenderTimeline(st, 80)

	firstFilled := strings.Count(first, "█")
	lastFilled := strings.Count(last, "█")
	if firstFilled >= lastFilled {
		t.Errorf("first frame filled (%d) should be < last frame filled (%d)", firstFilled, lastFilled)
	}
}

func TestRenderTimeline_ShowsRange(t *testing.T) {
	st := playback.New(frames(20)).SetRange(5, 15)
	got := RenderTimeline(st, 80)
	if !strings.Contains(got, "▒") {
		t.Error("range ahead of the cursor should be marked")
	}
	if !strings.Contains(got, "░") {
		t.Error("frames outside the range should be dim")
	}
}

func TestRenderTimeline_Empty(t *testing.T) {
	if got := RenderTimeline(playback.New(nil), 80); got != "" {
		t.Errorf("expected empty string for empty frame set, got %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	st := playback.New(frames(4))
	st.Playing = true
	st.Black = true

	got := RenderStatusBar(st, Status{OutputWidth: 1920, OutputHeight: 1080, Aspect: "fit", Share: ":8080", Clients: 2}, 160)
	for _, want := range []string{"playing", "1.00x", "83ms", "forward loop", "range 1-4 (4)", "1920x1080 fit black", "share :8080 (2)"} {
		if !strings.Contains(got, want) {
			t.Errorf("status bar missing %q: %q", want, got)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(playback.New(nil)); got != "range -" {
		t.Errorf("empty: got %q", got)
	}
	st := playback.New(frames(10)).SetRange(3, 8)
	if got := FormatRange(st); got != "range 3-8 (6)" {
		t.Errorf("got %q, want %q", got, "range 3-8 (6)")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "—"},
		{83 * time.Millisecond, "83ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}
