package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Trailblaze-work/frame-player/internal/ui/theme"
)

// RenderHeader renders the top header bar: the app title with the frame
// label on the first line and the loaded folder on the second.
func RenderHeader(dir, label string, width int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Render("▶ frame-player")

	labelText := lipgloss.NewStyle().
		Foreground(theme.ColorAccent).
		Render("  " + label)

	line1 := title + labelText

	path := dir
	if path == "" {
		path = "no folder loaded (press o to open)"
	}
	pathText := lipgloss.NewStyle().
		Foreground(theme.ColorSecondary).
		PaddingLeft(1).
		Render(TruncatePath(path, width-2))

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(theme.ColorDim).
		Width(width)

	return border.Render(fmt.Sprintf("%s\n%s", line1, pathText))
}

// TruncatePath shortens path to at most width cells, keeping the end, which
// is the part that tells folders apart.
func TruncatePath(path string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	return "…" + string(runes[len(runes)-(width-1):])
}
