package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

type fakeLoader struct {
	fail  map[string]bool
	calls []string
}

func (l *fakeLoader) Load(path string) (image.Image, error) {
	l.calls = append(l.calls, path)
	if l.fail[path] {
		return nil, errors.New("corrupt")
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	return img, nil
}

func frames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/frames/%03d.png", i)
	}
	return out
}

func readEvents(t *testing.T, path string) (string, [][]interface{}) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	events := make([][]interface{}, 0, len(lines)-1)
	for _, line := range lines[1:] {
		var event []interface{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("parsing event %q: %v", line, err)
		}
		events = append(events, event)
	}
	return lines[0], events
}

func TestPassLength(t *testing.T) {
	tests := []struct {
		name       string
		state      playback.State
		wantFrames int
	}{
		{"empty", playback.New(nil), 0},
		{"loop", playback.New(frames(10)).SetRange(3, 8), 6},
		{"ping-pong", func() playback.State {
			s := playback.New(frames(10)).SetRange(3, 8)
			s.Loop = playback.PingPong
			return s
		}(), 10},
		{"single frame", playback.New(frames(10)).SetRange(4, 4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassLength(tt.state); got != tt.wantFrames {
				t.Errorf("PassLength() = %d, want %d", got, tt.wantFrames)
			}
		})
	}
}

func TestGenerateCast(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "test.cast")

	opts := Options{
		TimingMode: TimingRealtime,
		Width:      40,
		Height:     16,
		Output:     output,
		Timestamp:  time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC),
	}

	loader := &fakeLoader{}
	if err := GenerateCast(playback.New(frames(4)), "/frames", loader, opts); err != nil {
		t.Fatalf("GenerateCast error: %v", err)
	}

	headerLine, events := readEvents(t, output)
	if len(events) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(events))
	}

	var header struct {
		Version   int    `json:"version"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Timestamp int64  `json:"timestamp"`
		Title     string `json:"title"`
	}
	if err := json.Unmarshal([]byte(headerLine), &header); err != nil {
		t.Fatalf("parsing header: %v", err)
	}
	if header.Version != 2 || header.Width != 40 || header.Height != 16 {
		t.Errorf("unexpected header: %+v", header)
	}
	if header.Title != "frames" {
		t.Errorf("title = %q, want folder name", header.Title)
	}
	if header.Timestamp != opts.Timestamp.Unix() {
		t.Errorf("timestamp = %d", header.Timestamp)
	}

	if events[0][0].(float64) != 0 {
		t.Errorf("first frame should be at t=0, got %v", events[0][0])
	}
	step := events[1][0].(float64) - events[0][0].(float64)
	if step < 0.083 || step > 0.084 {
		t.Errorf("frame step = %v, want 1/12s", step)
	}
	if events[0][1] != "o" {
		t.Errorf("expected event type 'o', got %v", events[0][1])
	}
	if len(loader.calls) != 4 {
		t.Errorf("expected 4 loads, got %d", len(loader.calls))
	}
}

func TestGenerateCast_PingPongOrder(t *testing.T) {
	output := filepath.Join(t.TempDir(), "pp.cast")
	st := playback.New(frames(4))
	st.Loop = playback.PingPong

	opts := Options{TimingMode: TimingInstant, Width: 40, Height: 12, Output: output}
	if err := GenerateCast(st, "/frames", &fakeLoader{}, opts); err != nil {
		t.Fatalf("GenerateCast error: %v", err)
	}

	_, events := readEvents(t, output)
	want := []string{"1/4", "2/4", "3/4", "4/4", "3/4", "2/4"}
	if len(events) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(events))
	}
	for i, label := range want {
		if !strings.Contains(events[i][2].(string), label) {
			t.Errorf("frame %d should show %s", i, label)
		}
	}
}

func TestGenerateCast_FrameLineEndings(t *testing.T) {
	output := filepath.Join(t.TempDir(), "test.cast")
	opts := Options{TimingMode: TimingInstant, Width: 40, Height: 12, Output: output}

	if err := GenerateCast(playback.New(frames(1)), "/frames", &fakeLoader{}, opts); err != nil {
		t.Fatalf("GenerateCast error: %v", err)
	}

	_, events := readEvents(t, output)
	if len(events) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(events))
	}

	frameContent := events[0][2].(string)
	if !strings.Contains(frameContent, "\r\n") {
		t.Error("frame content should use \\r\\n line endings")
	}
	if strings.Contains(strings.ReplaceAll(frameContent, "\r\n", ""), "\n") {
		t.Error("frame content should not contain bare \\n")
	}
}

func TestGenerateCast_DecodeFailureHoldsFrame(t *testing.T) {
	output := filepath.Join(t.TempDir(), "test.cast")
	opts := Options{TimingMode: TimingInstant, Width: 20, Height: 10, Output: output}
	fs := frames(3)
	loader := &fakeLoader{fail: map[string]bool{fs[1]: true}}

	if err := GenerateCast(playback.New(fs), "/frames", loader, opts); err != nil {
		t.Fatalf("GenerateCast error: %v", err)
	}
	_, events := readEvents(t, output)
	if len(events) != 3 {
		t.Fatalf("a bad frame should not stop the export, got %d frames", len(events))
	}
}

func TestGenerateCast_NoFrames(t *testing.T) {
	opts := Options{Output: filepath.Join(t.TempDir(), "empty.cast"), Width: 20, Height: 10}
	err := GenerateCast(playback.New(nil), "/frames", &fakeLoader{}, opts)
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if _, err := os.Stat(opts.Output); !os.IsNotExist(err) {
		t.Error("no file should be created for an empty export")
	}
}

func TestFormatCastInfo_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cast")

	// Write a fake .cast file: 1 header line + 3 frame lines
	content := "{\"version\":2}\n[0.0,\"o\",\"frame1\"]\n[1.0,\"o\",\"frame2\"]\n[2.0,\"o\",\"frame3\"]\n"
	os.WriteFile(path, []byte(content), 0644)

	info := FormatCastInfo(path)
	if !strings.Contains(info, "3 frames") {
		t.Errorf("expected '3 frames' in info, got: %s", info)
	}
	if !strings.Contains(info, "test.cast") {
		t.Errorf("expected path in info, got: %s", info)
	}
}

func TestFormatCastInfo_MissingFile(t *testing.T) {
	got := FormatCastInfo("/nonexistent/file.cast")
	if got != "/nonexistent/file.cast" {
		t.Errorf("got %q, want path only", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1KB"},
		{1536 * 1024, "1.5MB"},
		{2 * 1024 * 1024, "2.0MB"},
	}

	for _, tt := range tests {
		got := formatFileSize(tt.bytes)
		if got != tt.expected {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.TimingMode != TimingRealtime {
		t.Errorf("TimingMode: got %q, want %q", opts.TimingMode, TimingRealtime)
	}
	if opts.Width != 120 {
		t.Errorf("Width: got %d, want 120", opts.Width)
	}
	if opts.Height != 40 {
		t.Errorf("Height: got %d, want 40", opts.Height)
	}
}

func TestFrameDelay(t *testing.T) {
	base := time.Second / playback.BaseFPS
	tests := []struct {
		mode  TimingMode
		speed float64
		want  time.Duration
	}{
		{TimingRealtime, 1, base},
		{TimingRealtime, 2, base / 2},
		{TimingRealtime, 0, base},
		{TimingFast, 1, base / 2},
		{TimingCompressed, 4, base},
		{TimingInstant, 1, 10 * time.Millisecond},
	}

	for _, tt := range tests {
		got := Options{TimingMode: tt.mode}.FrameDelay(tt.speed)
		diff := got - tt.want
		if diff < -time.Microsecond || diff > time.Microsecond {
			t.Errorf("FrameDelay(%s, %v) = %v, want %v", tt.mode, tt.speed, got, tt.want)
		}
	}
}

func TestParseTimingMode(t *testing.T) {
	if m, ok := ParseTimingMode("fast"); !ok || m != TimingFast {
		t.Errorf("ParseTimingMode(fast) = %q, %v", m, ok)
	}
	if _, ok := ParseTimingMode("warp"); ok {
		t.Error("unknown mode should not parse")
	}
}
