// Package render draws images as text using upper half-block cells, two
// pixel rows per terminal line.
package render

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/image/draw"

	"github.com/Trailblaze-work/frame-player/internal/output"
)

const halfBlock = "▀"

// Renderer converts images into styled half-block text.
type Renderer struct {
	style  *lipgloss.Renderer
	scaler draw.Scaler
}

// New creates a renderer emitting colours for the given profile. Export uses
// termenv.TrueColor so recordings do not depend on the invoking terminal.
func New(profile termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Renderer{style: r, scaler: draw.ApproxBiLinear}
}

// NewTerminal creates a renderer matching the colour support of stdout.
func NewTerminal() *Renderer {
	return New(lipgloss.ColorProfile())
}

// Image renders img into cols×rows cells. The image is composed onto a black
// cols×(2·rows) canvas with the given aspect policy first, so the result
// always has exactly rows lines of cols cells. A nil image renders black.
func (r *Renderer) Image(img image.Image, cols, rows int, policy output.AspectPolicy) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	canvas := output.Compose(img, cols, rows*2, policy, r.scaler)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := canvas.RGBAAt(x, 2*y)
			bottom := canvas.RGBAAt(x, 2*y+1)
			cell := r.style.NewStyle().
				Foreground(lipgloss.Color(hex(top.R, top.G, top.B))).
				Background(lipgloss.Color(hex(bottom.R, bottom.G, bottom.B)))
			b.WriteString(cell.Render(halfBlock))
		}
	}
	return b.String()
}

// Blank returns rows lines of cols spaces.
func Blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Placeholder centres msg inside a blank cols×rows area.
func Placeholder(msg string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, msg)
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
