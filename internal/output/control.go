package output

import (
	"encoding/json"
	"fmt"

	"github.com/Trailblaze-work/frame-player/internal/playback"
)

// controlMessage is a transport command sent by a share client as a
// WebSocket text message, e.g. {"type":"scrub","value":0.5}.
type controlMessage struct {
	Type      string   `json:"type"`
	Value     *float64 `json:"value,omitempty"`
	On        *bool    `json:"on,omitempty"`
	Start     int      `json:"start,omitempty"`
	End       int      `json:"end,omitempty"`
	Count     int      `json:"count,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Loop      string   `json:"loop,omitempty"`
}

// ParseCommand decodes a control message into a playback command.
func ParseCommand(data []byte) (playback.Command, error) {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return playback.Command{}, fmt.Errorf("decoding control message: %w", err)
	}

	kind, ok := playback.ParseCommandKind(msg.Type)
	if !ok {
		return playback.Command{}, fmt.Errorf("unknown command %q", msg.Type)
	}

	cmd := playback.Command{
		Kind:  kind,
		Start: msg.Start,
		End:   msg.End,
		Count: msg.Count,
	}
	if msg.Value != nil {
		cmd.Value = *msg.Value
	}
	if msg.On != nil {
		cmd.On = *msg.On
	}

	switch kind {
	case playback.CmdSetSpeed, playback.CmdSetSpeedPreset, playback.CmdNudgeSpeed, playback.CmdScrub:
		if msg.Value == nil {
			return playback.Command{}, fmt.Errorf("%s requires a value", msg.Type)
		}
	case playback.CmdSetPlaying, playback.CmdSetBlack:
		if msg.On == nil {
			return playback.Command{}, fmt.Errorf("%s requires on", msg.Type)
		}
	case playback.CmdSetDirection:
		if cmd.Direction, ok = playback.ParseDirection(msg.Direction); !ok {
			return playback.Command{}, fmt.Errorf("unknown direction %q", msg.Direction)
		}
	case playback.CmdSetLoopMode:
		if cmd.Loop, ok = playback.ParseLoopMode(msg.Loop); !ok {
			return playback.Command{}, fmt.Errorf("unknown loop mode %q", msg.Loop)
		}
	case playback.CmdSetRange:
		if msg.Start < 1 || msg.End < 1 {
			return playback.Command{}, fmt.Errorf("range requires 1-based start and end")
		}
	case playback.CmdSetLastFrames:
		if msg.Count < 1 {
			return playback.Command{}, fmt.Errorf("last requires a positive count")
		}
	case playback.CmdStep:
		if msg.Count == 0 {
			cmd.Count = 1
		}
	}
	return cmd, nil
}
