package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/ui/theme"
)

// Status is what the status bar shows besides the transport state.
type Status struct {
	OutputWidth  int
	OutputHeight int
	Aspect       string
	Share        string // share server address, empty when not sharing
	Clients      int
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(st playback.State, info Status, width int) string {
	playText := "⏸ paused"
	if st.Playing {
		playText = "▶ playing"
	}
	playInfo := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Render(playText)

	frameTime, _ := playback.FrameTime(st.Speed())
	speedInfo := lipgloss.NewStyle().
		Foreground(theme.ColorAccent).
		Render(fmt.Sprintf("%.2fx (%s)", st.Speed(), formatDuration(frameTime)))

	modeInfo := lipgloss.NewStyle().
		Foreground(theme.ColorSecondary).
		Render(st.Direction.String() + " " + st.Loop.String())

	rangeInfo := lipgloss.NewStyle().
		Foreground(theme.ColorSecondary).
		Render(FormatRange(st))

	outText := fmt.Sprintf("%dx%d %s", info.OutputWidth, info.OutputHeight, info.Aspect)
	if st.Black {
		outText += " black"
	}
	outColor := theme.ColorDim
	if st.Black {
		outColor = theme.ColorWarning
	}
	outInfo := lipgloss.NewStyle().
		Foreground(outColor).
		Render(outText)

	sep := lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		Render("  │  ")

	content := playInfo + sep + speedInfo + sep + modeInfo + sep + rangeInfo + sep + outInfo
	if info.Share != "" {
		shareInfo := lipgloss.NewStyle().
			Foreground(theme.ColorSuccess).
			Render(fmt.Sprintf("share %s (%d)", info.Share, info.Clients))
		content += sep + shareInfo
	}

	bar := lipgloss.NewStyle().
		Background(theme.ColorBgAlt).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return bar.Render(content)
}

// FormatRange shows the playback range 1-based, e.g. "range 3-8 (6)".
func FormatRange(st playback.State) string {
	if st.Len() == 0 {
		return "range -"
	}
	c := st.Clamped()
	return fmt.Sprintf("range %d-%d (%d)", c.Start+1, c.End+1, c.End-c.Start+1)
}

// RenderTimeline renders the scrubber for the whole frame set. Cells inside
// the playback range are drawn brighter than those outside it, and the bar
// is filled up to the cursor.
func RenderTimeline(st playback.State, width int) string {
	total := st.Len()
	if total <= 0 {
		return ""
	}
	c := st.Clamped()

	prefix := " ◀◀  ◀ "
	suffix := " ▶  ▶▶ "
	barWidth := width - len([]rune(prefix)) - len([]rune(suffix)) - 4
	if barWidth < 10 {
		barWidth = 10
	}

	cell := func(frame int) int {
		if total == 1 {
			return 0
		}
		return frame * (barWidth - 1) / (total - 1)
	}
	cursor := cell(c.Index)
	start, end := cell(c.Start), cell(c.End)

	bar := make([]string, barWidth)
	for i := range bar {
		switch {
		case i <= cursor:
			bar[i] = "█"
		case i >= start && i <= end:
			bar[i] = "▒"
		default:
			bar[i] = "░"
		}
	}

	inRange := lipgloss.NewStyle().Foreground(theme.ColorPrimary)
	outRange := lipgloss.NewStyle().Foreground(theme.ColorDim)
	var b strings.Builder
	for i := 0; i < barWidth; {
		in := i >= start && i <= end
		j := i
		for j < barWidth && (j >= start && j <= end) == in {
			j++
		}
		style := outRange
		if in {
			style = inRange
		}
		b.WriteString(style.Render(strings.Join(bar[i:j], "")))
		i = j
	}

	left := lipgloss.NewStyle().Foreground(theme.ColorDim).Render(prefix)
	right := lipgloss.NewStyle().Foreground(theme.ColorDim).Render(suffix)

	return left + b.String() + right
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "—"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
