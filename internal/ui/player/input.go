package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

// inputMode is the numeric field currently being edited, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputLast
	inputRange
	inputScrub
	inputSize
)

func (i inputMode) prompt() (label, placeholder string) {
	switch i {
	case inputLast:
		return "last frames: ", "10, 25, 50, 100"
	case inputRange:
		return "range: ", "start-end"
	case inputScrub:
		return "scrub %: ", "0-100"
	case inputSize:
		return "output size: ", "1920x1080"
	}
	return "", ""
}

// parseInput turns the text typed into a numeric field into a command.
func parseInput(mode inputMode, text string) (playback.Command, error) {
	text = strings.TrimSpace(text)
	switch mode {
	case inputLast:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return playback.Command{}, fmt.Errorf("invalid frame count %q", text)
		}
		return playback.SetLastFrames(n), nil

	case inputRange:
		start, end, err := playback.ParseRange(text)
		if err != nil {
			return playback.Command{}, err
		}
		return playback.SetRange(start, end), nil

	case inputScrub:
		v, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		if err != nil || v < 0 || v > 100 {
			return playback.Command{}, fmt.Errorf("scrub position must be 0-100, got %q", text)
		}
		return playback.Scrub(v / 100), nil
	}
	return playback.Command{}, fmt.Errorf("no input active")
}

// parseSize reads an output resolution typed as "WIDTHxHEIGHT".
func parseSize(text string) (width, height int, err error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == 'x' || r == '*' || r == ' ' || r == ','
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("size must look like 1920x1080, got %q", text)
	}
	width, err1 := strconv.Atoi(fields[0])
	height, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid size %q", text)
	}
	return width, height, nil
}
