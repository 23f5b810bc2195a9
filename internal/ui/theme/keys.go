package theme

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Quit        key.Binding
	Back        key.Binding
	Select      key.Binding
	PlayPause   key.Binding
	StepForward key.Binding
	StepBack    key.Binding
	Direction   key.Binding
	LoopMode    key.Binding
	SpeedUp     key.Binding
	SpeedDown   key.Binding
	SpeedPreset key.Binding
	LastPreset  key.Binding
	StartDown   key.Binding
	StartUp     key.Binding
	EndDown     key.Binding
	EndUp       key.Binding
	LastFrames  key.Binding
	Range       key.Binding
	Scrub       key.Binding
	Black       key.Binding
	Aspect      key.Binding
	OutputSize  key.Binding
	Open        key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default key bindings.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	PlayPause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	StepForward: key.NewBinding(
		key.WithKeys("right", "."),
		key.WithHelp("→", "next frame"),
	),
	StepBack: key.NewBinding(
		key.WithKeys("left", ","),
		key.WithHelp("←", "prev frame"),
	),
	Direction: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "direction"),
	),
	LoopMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "loop/ping-pong"),
	),
	SpeedUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	SpeedDown: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	SpeedPreset: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "speed preset"),
	),
	LastPreset: key.NewBinding(
		key.WithKeys("!", "@", "#", "$"),
		key.WithHelp("shift+1-4", "last 10/25/50/100"),
	),
	StartDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "start -1"),
	),
	StartUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "start +1"),
	),
	EndDown: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "end -1"),
	),
	EndUp: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "end +1"),
	),
	LastFrames: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "last N frames"),
	),
	Range: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "set range"),
	),
	Scrub: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scrub to %"),
	),
	Black: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "black screen"),
	),
	Aspect: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "fit/stretch"),
	),
	OutputSize: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "output size"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open folder"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.StepBack, k.StepForward, k.Direction, k.LoopMode, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.StepBack, k.StepForward, k.Direction, k.LoopMode},
		{k.SpeedUp, k.SpeedDown, k.SpeedPreset, k.LastPreset},
		{k.StartDown, k.StartUp, k.EndDown, k.EndUp, k.LastFrames, k.Range, k.Scrub},
		{k.Black, k.Aspect, k.OutputSize, k.Open, k.Help, k.Quit},
	}
}
