package playback

import "time"

// CommandKind enumerates the transport operations the UI can request.
type CommandKind int

const (
	CmdTogglePlay CommandKind = iota
	CmdSetPlaying
	CmdSetSpeed       // Value is a slider position
	CmdSetSpeedPreset // Value is a playback multiplier
	CmdNudgeSpeed     // Value is a slider delta
	CmdSetDirection
	CmdToggleDirection
	CmdSetLoopMode
	CmdToggleLoopMode
	CmdSetRange
	CmdSetLastFrames
	CmdScrub
	CmdStep
	CmdSetBlack
	CmdToggleBlack
)

var commandNames = map[CommandKind]string{
	CmdTogglePlay:      "toggle_play",
	CmdSetPlaying:      "set_playing",
	CmdSetSpeed:        "speed",
	CmdSetSpeedPreset:  "speed_preset",
	CmdNudgeSpeed:      "nudge_speed",
	CmdSetDirection:    "direction",
	CmdToggleDirection: "toggle_direction",
	CmdSetLoopMode:     "loop",
	CmdToggleLoopMode:  "toggle_loop",
	CmdSetRange:        "range",
	CmdSetLastFrames:   "last",
	CmdScrub:           "scrub",
	CmdStep:            "step",
	CmdSetBlack:        "black",
	CmdToggleBlack:     "toggle_black",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseCommandKind looks a command up by its wire name.
func ParseCommandKind(name string) (CommandKind, bool) {
	for k, n := range commandNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Command is a single transport request. Only the fields relevant to Kind
// are read.
type Command struct {
	Kind      CommandKind
	On        bool
	Value     float64
	Start     int // 1-based
	End       int // 1-based
	Count     int
	Direction Direction
	Loop      LoopMode
}

func TogglePlay() Command                  { return Command{Kind: CmdTogglePlay} }
func SetPlaying(on bool) Command           { return Command{Kind: CmdSetPlaying, On: on} }
func SetSpeed(slider float64) Command      { return Command{Kind: CmdSetSpeed, Value: slider} }
func SetSpeedPreset(speed float64) Command { return Command{Kind: CmdSetSpeedPreset, Value: speed} }
func NudgeSpeed(delta float64) Command     { return Command{Kind: CmdNudgeSpeed, Value: delta} }
func SetDirection(d Direction) Command     { return Command{Kind: CmdSetDirection, Direction: d} }
func ToggleDirection() Command             { return Command{Kind: CmdToggleDirection} }
func SetLoopMode(m LoopMode) Command       { return Command{Kind: CmdSetLoopMode, Loop: m} }
func ToggleLoopMode() Command              { return Command{Kind: CmdToggleLoopMode} }
func SetRange(start, end int) Command      { return Command{Kind: CmdSetRange, Start: start, End: end} }
func SetLastFrames(count int) Command      { return Command{Kind: CmdSetLastFrames, Count: count} }
func Scrub(p float64) Command              { return Command{Kind: CmdScrub, Value: p} }
func Step(delta int) Command               { return Command{Kind: CmdStep, Count: delta} }
func SetBlack(on bool) Command             { return Command{Kind: CmdSetBlack, On: on} }
func ToggleBlack() Command                 { return Command{Kind: CmdToggleBlack} }

// Apply executes cmd against the state. now restarts the frame clock for
// commands that change the playback rate.
func (s State) Apply(cmd Command, now time.Time) State {
	switch cmd.Kind {
	case CmdTogglePlay:
		return s.setPlaying(!s.Playing, now)
	case CmdSetPlaying:
		return s.setPlaying(cmd.On, now)
	case CmdSetSpeed:
		s.Slider = clampSlider(cmd.Value)
		s.lastAdvance = now
	case CmdSetSpeedPreset:
		s.Slider = SpeedToSlider(cmd.Value)
		s.lastAdvance = now
	case CmdNudgeSpeed:
		s.Slider = clampSlider(s.Slider + cmd.Value)
		s.lastAdvance = now
	case CmdSetDirection:
		s.Direction = cmd.Direction
	case CmdToggleDirection:
		s.Direction = s.Direction.Reverse()
	case CmdSetLoopMode:
		s.Loop = cmd.Loop
	case CmdToggleLoopMode:
		s.Loop = s.Loop.Next()
	case CmdSetRange:
		return s.SetRange(cmd.Start, cmd.End)
	case CmdSetLastFrames:
		return s.SetLastFrames(cmd.Count)
	case CmdScrub:
		return s.Scrub(cmd.Value)
	case CmdStep:
		return s.StepBy(cmd.Count)
	case CmdSetBlack:
		s.Black = cmd.On
	case CmdToggleBlack:
		s.Black = !s.Black
	}
	return s
}

// setPlaying starts or stops playback. Starting at zero speed restores 1x.
func (s State) setPlaying(on bool, now time.Time) State {
	s.Playing = on
	if on && s.Speed() <= 0 {
		s.Slider = SpeedToSlider(1)
	}
	s.lastAdvance = now
	return s
}

func clampSlider(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxSlider {
		return MaxSlider
	}
	return v
}
