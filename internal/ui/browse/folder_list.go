package browse

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/ui/theme"
)

// FolderSelected is sent when a folder is chosen for playback.
type FolderSelected struct {
	Path string
}

// GoBack signals that the picker was dismissed without a choice.
type GoBack struct{}

// foldersLoadedMsg carries the listing of a directory.
type foldersLoadedMsg struct {
	dir     string
	folders []frameset.Folder
	err     error
}

var (
	openKey = key.NewBinding(
		key.WithKeys("right", "tab"),
		key.WithHelp("→", "open folder"),
	)
	upKey = key.NewBinding(
		key.WithKeys("left", "backspace"),
		key.WithHelp("←", "parent"),
	)
	playHereKey = key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play this folder"),
	)
)

// folderItem wraps a Folder for the list.
type folderItem struct {
	folder frameset.Folder
	parent bool
}

func (i folderItem) FilterValue() string {
	return i.folder.Name
}

type folderDelegate struct{}

func (d folderDelegate) Height() int                             { return 2 }
func (d folderDelegate) Spacing() int                            { return 1 }
func (d folderDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d folderDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(folderItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	name := item.folder.Name + "/"
	detail := "parent folder"
	if !item.parent {
		detail = fmt.Sprintf("%s  ·  %s", formatFrames(item.folder.Frames), item.folder.ModTime.Format("Jan 02 15:04"))
	}

	var nameStyle, detailStyle lipgloss.Style
	if isSelected {
		nameStyle = lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true).PaddingLeft(2)
		detailStyle = lipgloss.NewStyle().Foreground(theme.ColorSecondary).PaddingLeft(4)
		fmt.Fprintf(w, "%s\n%s", nameStyle.Render("> "+name), detailStyle.Render(detail))
	} else {
		nameStyle = lipgloss.NewStyle().Foreground(theme.ColorText).PaddingLeft(2)
		detailStyle = lipgloss.NewStyle().Foreground(theme.ColorDim).PaddingLeft(4)
		fmt.Fprintf(w, "%s\n%s", nameStyle.Render("  "+name), detailStyle.Render(detail))
	}
}

// FolderListModel is the folder picker screen. Enter on a folder with
// frames plays it; folders without frames are opened instead.
type FolderListModel struct {
	list   list.Model
	dir    string
	exts   []string
	count  int
	width  int
	height int
	err    error
}

// NewFolderList creates a picker rooted at dir. Call Init to load it.
func NewFolderList(dir string, exts []string, width, height int) FolderListModel {
	l := list.New(nil, folderDelegate{}, width, max(height-4, 1))
	l.Title = "Open a frame folder"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.StyleHeader
	l.SetShowHelp(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{openKey, upKey, playHereKey}
	}

	abs, err := filepath.Abs(dir)
	if err == nil {
		dir = abs
	}

	return FolderListModel{
		list:   l,
		dir:    dir,
		exts:   exts,
		width:  width,
		height: height,
	}
}

// Dir is the directory being listed.
func (m FolderListModel) Dir() string {
	return m.dir
}

func (m FolderListModel) Init() tea.Cmd {
	return m.load(m.dir)
}

func (m FolderListModel) load(dir string) tea.Cmd {
	exts := m.exts
	return func() tea.Msg {
		folders, err := frameset.ListFolders(dir, exts)
		return foldersLoadedMsg{dir: dir, folders: folders, err: err}
	}
}

func (m FolderListModel) Update(msg tea.Msg) (FolderListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case foldersLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.dir = msg.dir
		m.count = len(msg.folders)
		items := make([]list.Item, 0, len(msg.folders)+1)
		if parent := filepath.Dir(msg.dir); parent != msg.dir {
			items = append(items, folderItem{folder: frameset.Folder{Name: "..", Path: parent}, parent: true})
		}
		for _, f := range msg.folders {
			items = append(items, folderItem{folder: f})
		}
		m.list.ResetFilter()
		m.list.Select(0)
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		// Don't handle keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, theme.DefaultKeyMap.Select):
			item, ok := m.list.SelectedItem().(folderItem)
			if !ok {
				return m, nil
			}
			if item.parent || item.folder.Frames == 0 {
				return m, m.load(item.folder.Path)
			}
			return m, selectFolder(item.folder.Path)
		case key.Matches(msg, openKey):
			if item, ok := m.list.SelectedItem().(folderItem); ok {
				return m, m.load(item.folder.Path)
			}
			return m, nil
		case key.Matches(msg, upKey):
			return m, m.load(filepath.Dir(m.dir))
		case key.Matches(msg, playHereKey):
			return m, selectFolder(m.dir)
		case key.Matches(msg, theme.DefaultKeyMap.Back):
			return m, func() tea.Msg { return GoBack{} }
		case key.Matches(msg, theme.DefaultKeyMap.Quit):
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-4, 1))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func selectFolder(path string) tea.Cmd {
	return func() tea.Msg { return FolderSelected{Path: path} }
}

func (m FolderListModel) View() string {
	header := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		PaddingLeft(1).
		Render("▶ frame-player")

	subtitle := lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		PaddingLeft(1).
		Render(fmt.Sprintf("  %s  ·  %d folders", m.dir, m.count))

	body := m.list.View()
	if m.err != nil {
		body = theme.StyleError.Render("Error: " + m.err.Error())
	}

	return strings.Join([]string{
		header + subtitle,
		"",
		body,
	}, "\n")
}

func formatFrames(n int) string {
	switch n {
	case 0:
		return "no frames"
	case 1:
		return "1 frame"
	default:
		return fmt.Sprintf("%d frames", n)
	}
}
