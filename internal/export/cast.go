package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/render"
)

// ErrNoFrames is returned when there is nothing to export.
var ErrNoFrames = errors.New("no frames to export")

// ImageLoader decodes frame files.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// castHeader is the asciinema v2 header.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// PassLength is the number of frames in one full pass through the range:
// every frame once for loop mode, there and back again for ping-pong.
func PassLength(st playback.State) int {
	if st.Len() == 0 {
		return 0
	}
	c := st.Clamped()
	span := c.End - c.Start + 1
	if span <= 1 {
		return 1
	}
	if c.Loop == playback.PingPong {
		return 2 * (span - 1)
	}
	return span
}

// GenerateCast writes one pass through the playback range, starting at the
// cursor, as an asciinema .cast file. Frames that fail to decode are logged
// and the previous image is shown in their place.
func GenerateCast(st playback.State, dir string, loader ImageLoader, opts Options) error {
	st = st.Clamped()
	frames := PassLength(st)
	if frames == 0 {
		return ErrNoFrames
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	title := opts.Title
	if title == "" {
		title = filepath.Base(dir)
	}
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	header := castHeader{
		Version:   2,
		Width:     opts.Width,
		Height:    opts.Height,
		Timestamp: ts.Unix(),
		Title:     title,
		Env: map[string]string{
			"TERM":      "xterm-256color",
			"COLORTERM": "truecolor",
		},
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshaling header: %w", err)
	}
	fmt.Fprintf(w, "%s\n", headerJSON)

	r := render.New(termenv.TrueColor)
	delay := opts.FrameDelay(st.Speed())
	st.Playing = true

	var (
		elapsed time.Duration
		img     image.Image
	)
	for i := 0; i < frames; i++ {
		path, _ := st.Current()
		if decoded, err := loader.Load(path); err != nil {
			log.Warn("skipping undecodable frame", "path", path, "err", err)
		} else {
			img = decoded
		}

		frame := RenderFrame(st, img, dir, r, opts)

		// Clear screen + render; raw terminals need CRLF
		output := "\033[2J\033[H" + strings.ReplaceAll(frame, "\n", "\r\n")

		timestamp := float64(elapsed) / float64(time.Second)
		eventData, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("marshaling frame %d: %w", i, err)
		}
		fmt.Fprintf(w, "[%.6f, \"o\", %s]\n", timestamp, eventData)

		elapsed += delay
		st = st.Step()
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// FormatCastInfo returns info about a generated .cast file.
func FormatCastInfo(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}

	var lines int
	data, err := os.ReadFile(path)
	if err == nil {
		lines = strings.Count(string(data), "\n")
	}

	return fmt.Sprintf("%s (%d frames, %s)", path, lines-1, formatFileSize(info.Size()))
}

func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.0fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
