package output

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

type recordingSink struct {
	frames []Frame
}

func (r *recordingSink) Publish(f Frame) {
	r.frames = append(r.frames, f)
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name     string
		src, dst image.Point
		want     image.Rectangle
	}{
		{"wide into 16:9", image.Pt(200, 100), image.Pt(160, 90), image.Rect(0, 5, 160, 85)},
		{"tall into 16:9", image.Pt(100, 200), image.Pt(160, 90), image.Rect(57, 0, 102, 90)},
		{"same aspect", image.Pt(32, 18), image.Pt(160, 90), image.Rect(0, 0, 160, 90)},
		{"empty src", image.Pt(0, 10), image.Pt(160, 90), image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitRect(tt.src, tt.dst); got != tt.want {
				t.Errorf("FitRect(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestCompose_FitLetterboxes(t *testing.T) {
	src := solid(20, 10, color.RGBA{255, 255, 255, 255})
	out := Compose(src, 20, 20, Fit, nil)

	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v, want 20x20", out.Bounds())
	}
	if r, g, b, _ := out.At(10, 1).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Error("letterbox area should be black")
	}
	if r, _, _, _ := out.At(10, 10).RGBA(); r>>8 < 200 {
		t.Error("image area should be white")
	}
}

func TestCompose_StretchFills(t *testing.T) {
	src := solid(20, 10, color.RGBA{255, 255, 255, 255})
	out := Compose(src, 20, 20, Stretch, nil)
	if r, _, _, _ := out.At(10, 1).RGBA(); r>>8 < 200 {
		t.Error("stretched image should cover the top rows")
	}
}

func TestCompose_NilIsBlack(t *testing.T) {
	out := Compose(nil, 4, 4, Fit, nil)
	if _, _, _, a := out.At(2, 2).RGBA(); a != 0xffff {
		t.Error("expected opaque black canvas")
	}
}

func TestPresenter_BlackAndHold(t *testing.T) {
	sink := &recordingSink{}
	p := NewPresenter(8, 8, Stretch, quiet(), sink)
	p.SetImage(solid(2, 2, color.RGBA{255, 0, 0, 255}))

	p.Present("1/2")
	if len(sink.frames) != 1 || sink.frames[0].Label != "1/2" {
		t.Fatalf("unexpected frames: %+v", sink.frames)
	}
	if r, _, _, _ := sink.frames[0].Image.At(4, 4).RGBA(); r>>8 < 200 {
		t.Error("expected red output")
	}

	// A failed decode passes nil and keeps the previous image.
	p.SetImage(nil)
	if p.Current() == nil {
		t.Fatal("SetImage(nil) should keep the last image")
	}

	p.SetBlack(true)
	p.Present("2/2")
	if r, _, _, _ := sink.frames[1].Image.At(4, 4).RGBA(); r != 0 {
		t.Error("black screen should publish a black frame")
	}
}

func TestPresenter_Resize(t *testing.T) {
	p := NewPresenter(0, 0, Fit, quiet())
	if w, h := p.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("invalid size should fall back to default, got %dx%d", w, h)
	}
	if err := p.Resize(640, 360); err != nil {
		t.Fatalf("Resize error: %v", err)
	}
	if err := p.Resize(-1, 10); err == nil {
		t.Error("expected error for negative width")
	}
	if err := p.Resize(MaxDimension+1, 10); err == nil {
		t.Error("expected error for oversized width")
	}
	if w, h := p.Size(); w != 640 || h != 360 {
		t.Errorf("Size() = %dx%d, want 640x360", w, h)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    playback.CommandKind
		wantErr bool
	}{
		{`{"type":"toggle_play"}`, playback.CmdTogglePlay, false},
		{`{"type":"scrub","value":0.25}`, playback.CmdScrub, false},
		{`{"type":"scrub"}`, 0, true},
		{`{"type":"range","start":2,"end":5}`, playback.CmdSetRange, false},
		{`{"type":"range","start":0,"end":5}`, 0, true},
		{`{"type":"last","count":10}`, playback.CmdSetLastFrames, false},
		{`{"type":"direction","direction":"backward"}`, playback.CmdSetDirection, false},
		{`{"type":"direction"}`, 0, true},
		{`{"type":"direction","direction":"sideways"}`, 0, true},
		{`{"type":"loop","loop":"ping-pong"}`, playback.CmdSetLoopMode, false},
		{`{"type":"loop","loop":"spiral"}`, 0, true},
		{`{"type":"black","on":true}`, playback.CmdSetBlack, false},
		{`{"type":"black"}`, 0, true},
		{`{"type":"warp"}`, 0, true},
		{`not json`, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCommand([]byte(tt.input))
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCommand(%s): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCommand(%s) error: %v", tt.input, err)
			continue
		}
		if got.Kind != tt.want {
			t.Errorf("ParseCommand(%s).Kind = %v, want %v", tt.input, got.Kind, tt.want)
		}
	}

	cmd, _ := ParseCommand([]byte(`{"type":"direction","direction":"backward"}`))
	if cmd.Direction != playback.Backward {
		t.Errorf("Direction = %v, want backward", cmd.Direction)
	}
	cmd, _ = ParseCommand([]byte(`{"type":"step"}`))
	if cmd.Count != 1 {
		t.Errorf("step without count = %d, want 1", cmd.Count)
	}
}

func TestServer_SnapshotAndStatus(t *testing.T) {
	s := NewServer(WithServerLogger(quiet()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/frame.jpg")
	if err != nil {
		t.Fatalf("GET /frame.jpg: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status before publish = %d, want 503", resp.StatusCode)
	}

	if err := s.broadcast(Frame{Image: solid(16, 9, color.White), Label: "3/10"}); err != nil {
		t.Fatalf("broadcast error: %v", err)
	}

	resp, err = http.Get(ts.URL + "/frame.jpg")
	if err != nil {
		t.Fatalf("GET /frame.jpg: %v", err)
	}
	defer resp.Body.Close()
	img, err := jpeg.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("snapshot bounds = %v, want 16x9", img.Bounds())
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if st.Name != ServerName || st.Frame != "3/10" || st.Width != 16 || st.Published != 1 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestServer_WebSocketStreamAndCommands(t *testing.T) {
	cmds := make(chan playback.Command, 1)
	s := NewServer(
		WithServerLogger(quiet()),
		WithCommandHandler(func(c playback.Command) { cmds <- c }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for s.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", s.ClientCount())
	}

	s.Publish(Frame{Image: solid(8, 8, color.White), Label: "1/1"})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	messageType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if messageType != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", messageType)
	}
	if _, err := jpeg.Decode(strings.NewReader(string(data))); err != nil {
		t.Errorf("frame is not a JPEG: %v", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"toggle_play"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case c := <-cmds:
		if c.Kind != playback.CmdTogglePlay {
			t.Errorf("command = %v, want toggle_play", c.Kind)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("command never arrived")
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s := NewServer(WithServerLogger(quiet()), WithName("test output"))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	var resp *http.Response
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Get("http://" + ln.Addr().String() + "/")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	var st Status
	json.NewDecoder(resp.Body).Decode(&st)
	resp.Body.Close()
	if st.Name != "test output" {
		t.Errorf("name = %q, want %q", st.Name, "test output")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}

func TestServer_ListenAndServeBadAddr(t *testing.T) {
	s := NewServer(WithServerLogger(quiet()))
	if err := s.ListenAndServe(context.Background(), "256.0.0.1:bad"); err == nil {
		t.Error("expected listen error")
	}
}
