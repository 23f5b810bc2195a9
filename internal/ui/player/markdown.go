package player

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

var mdRenderer *glamour.TermRenderer

func init() {
	var err error
	mdRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback: no markdown rendering
		mdRenderer = nil
	}
}

// RenderMarkdown renders markdown text for the terminal.
func RenderMarkdown(text string) string {
	if mdRenderer == nil || text == "" {
		return text
	}

	rendered, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}

	// Glamour adds trailing newlines, trim them
	return strings.TrimRight(rendered, "\n")
}

const helpMarkdown = `# Keys

| Key | Action |
|-----|--------|
| space | play / pause |
| ← → | previous / next frame |
| d | reverse direction |
| m | loop / ping-pong |
| + - | faster / slower |
| 1 2 3 4 | speed 0.2x, 0.5x, 1x, 2x |
| ! @ # $ | last 10, 25, 50, 100 frames |
| [ ] | range start -1 / +1 |
| { } | range end -1 / +1 |
| l | last N frames |
| r | set range (1-based, e.g. 10-40) |
| s | scrub to a position in the range (%) |
| b | black screen |
| a | fit / stretch output |
| w | output size (e.g. 1280x720) |
| o | open another folder |
| q | quit |

The share server publishes the output frame at the output size. Playback
keeps running while the black screen is on.

Press any key to close help.
`
