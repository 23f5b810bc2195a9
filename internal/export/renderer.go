package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/render"
	"github.com/Trailblaze-work/frame-player/internal/ui/components"
)

// RenderFrame renders a complete player screen for the frame under the
// cursor as a string of opts.Width columns and opts.Height rows.
func RenderFrame(st playback.State, img image.Image, dir string, r *render.Renderer, opts Options) string {
	header := components.RenderHeader(dir, st.Label(), opts.Width)
	timeline := components.RenderTimeline(st, opts.Width)
	status := components.RenderStatusBar(st, components.Status{
		OutputWidth:  opts.Width,
		OutputHeight: opts.Height,
		Aspect:       opts.Policy.String(),
	}, opts.Width)

	headerLines := strings.Count(header, "\n") + 1
	statusLines := 2
	rows := opts.Height - headerLines - statusLines
	if rows < 1 {
		rows = 1
	}
	preview := r.Image(img, opts.Width, rows, opts.Policy)

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, preview, timeline, status)
}
