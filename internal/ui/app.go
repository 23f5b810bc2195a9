package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Trailblaze-work/frame-player/internal/ui/browse"
	"github.com/Trailblaze-work/frame-player/internal/ui/player"
)

// Screen identifies the current UI screen.
type Screen int

const (
	ScreenPlayer Screen = iota
	ScreenBrowse
)

// AppModel is the top-level Bubble Tea model. Playback keeps running while
// the folder picker is shown.
type AppModel struct {
	screen Screen
	player player.Model
	picker browse.FolderListModel
	exts   []string
	width  int
	height int

	err error
}

// NewApp creates the top-level application model. Without a folder to
// play it opens the folder picker in the working directory.
func NewApp(p player.Model, exts []string) AppModel {
	if p.Dir() == "" {
		return NewBrowser(p, startDir(""), exts)
	}
	return AppModel{player: p, exts: exts, screen: ScreenPlayer}
}

// NewBrowser creates the application model showing the folder picker at
// dir, whether or not the player already has a folder.
func NewBrowser(p player.Model, dir string, exts []string) AppModel {
	return AppModel{
		player: p,
		exts:   exts,
		screen: ScreenBrowse,
		picker: browse.NewFolderList(dir, exts, 0, 0),
	}
}

// Screen returns the active screen.
func (m AppModel) Screen() Screen {
	return m.screen
}

// Player returns the player screen model.
func (m AppModel) Player() player.Model {
	return m.player
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.player.Init()}
	if m.screen == ScreenBrowse {
		cmds = append(cmds, m.picker.Init())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmd1, cmd2 tea.Cmd
		m.player, cmd1 = m.player.Update(msg)
		if m.screen == ScreenBrowse {
			m.picker, cmd2 = m.picker.Update(msg)
		}
		return m, tea.Batch(cmd1, cmd2)

	case player.OpenFolder:
		m.screen = ScreenBrowse
		m.picker = browse.NewFolderList(startDir(m.player.Dir()), m.exts, m.width, m.height)
		return m, m.picker.Init()

	case browse.FolderSelected:
		p, err := m.player.Open(msg.Path)
		m.player = p
		m.err = err
		m.screen = ScreenPlayer
		return m, nil

	case browse.GoBack:
		if m.player.Dir() == "" {
			return m, tea.Quit
		}
		m.screen = ScreenPlayer
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		var cmd tea.Cmd
		switch m.screen {
		case ScreenBrowse:
			m.picker, cmd = m.picker.Update(msg)
		default:
			m.player, cmd = m.player.Update(msg)
		}
		return m, cmd
	}

	// Everything else (ticks, remote commands, listings) goes to the
	// screen that owns it; the player runs in the background.
	var cmd1, cmd2 tea.Cmd
	m.player, cmd1 = m.player.Update(msg)
	if m.screen == ScreenBrowse {
		m.picker, cmd2 = m.picker.Update(msg)
	}
	return m, tea.Batch(cmd1, cmd2)
}

func (m AppModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress any key to continue.", m.err)
	}

	switch m.screen {
	case ScreenBrowse:
		return m.picker.View()
	case ScreenPlayer:
		return m.player.View()
	}

	return "Loading..."
}

// startDir picks where the folder picker opens: the parent of the folder
// being played, else the working directory.
func startDir(current string) string {
	if current != "" {
		return filepath.Dir(current)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
