// Package player is the transport screen: preview, timeline, status bar and
// the keyboard controls driving the playback controller.
package player

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/output"
	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/render"
	"github.com/Trailblaze-work/frame-player/internal/ui/components"
	"github.com/Trailblaze-work/frame-player/internal/ui/theme"
)

// TickInterval is how often playback is advanced and the folder polled.
const TickInterval = time.Second / 60

// speedNudge is the slider step of the +/- keys.
const speedNudge = playback.MaxSlider / 40

// LastFramePresets are the quick "last N frames" choices.
var LastFramePresets = []int{10, 25, 50, 100}

// OpenFolder asks the app to show the folder picker.
type OpenFolder struct{}

// RemoteCommand carries a transport command from a share client into the
// update loop.
type RemoteCommand struct {
	Command playback.Command
}

// tickMsg drives playback.
type tickMsg time.Time

// Options configures the player screen.
type Options struct {
	Source    frameset.Source
	Presenter *output.Presenter
	Share     *output.Server // optional
	ShareAddr string
	Speed     float64 // initial playback multiplier, 0 keeps 1x
	Logger    *log.Logger
}

// previewKey identifies what the cached preview was rendered from.
type previewKey struct {
	img    image.Image
	cols   int
	rows   int
	black  bool
	empty  bool
	policy output.AspectPolicy
}

// Model is the player screen model.
type Model struct {
	ctrl      *playback.Controller
	source    frameset.Source
	loader    *frameset.Loader
	presenter *output.Presenter
	renderer  *render.Renderer
	share     *output.Server
	shareAddr string
	logger    *log.Logger

	help     help.Model
	input    textinput.Model
	mode     inputMode
	showHelp bool
	notice   string
	width    int
	height   int

	loadedPath string
	preview    string
	previewKey previewKey
}

// New creates the player screen.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	presenter := opts.Presenter
	if presenter == nil {
		presenter = output.NewPresenter(output.DefaultWidth, output.DefaultHeight, output.Fit, logger)
	}

	ctrl := playback.NewController(
		playback.WithProvider(opts.Source),
		playback.WithLogger(logger.WithPrefix("playback")),
	)
	if opts.Speed > 0 {
		ctrl.Dispatch(playback.SetSpeedPreset(opts.Speed), time.Now())
	}

	input := textinput.New()
	input.CharLimit = 16
	input.Width = 20

	return Model{
		ctrl:      ctrl,
		source:    opts.Source,
		loader:    frameset.NewLoader(),
		presenter: presenter,
		renderer:  render.NewTerminal(),
		share:     opts.Share,
		shareAddr: opts.ShareAddr,
		logger:    logger.WithPrefix("ui"),
		help:      help.New(),
		input:     input,
	}
}

// State returns the current playback state.
func (m Model) State() playback.State {
	return m.ctrl.State()
}

// Dir is the folder being played.
func (m Model) Dir() string {
	if m.source == nil {
		return ""
	}
	return m.source.Dir()
}

// Open switches playback to another folder. The new frame set is picked up
// by the next tick.
func (m Model) Open(dir string) (Model, error) {
	if m.source == nil {
		m.notice = "no frame source to open " + dir
		return m, errors.New(m.notice)
	}
	if err := m.source.SetDir(dir); err != nil {
		m.notice = err.Error()
		return m, err
	}
	m.loadedPath = ""
	m.notice = ""
	m.logger.Info("folder opened", "dir", dir)
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.apply(m.ctrl.Tick(time.Time(msg)), false)
		return m, tick()

	case RemoteCommand:
		m.dispatch(msg.Command)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := theme.DefaultKeyMap

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.PlayPause):
		m.dispatch(playback.TogglePlay())
	case key.Matches(msg, keys.StepForward):
		m.dispatch(playback.Step(1))
	case key.Matches(msg, keys.StepBack):
		m.dispatch(playback.Step(-1))
	case key.Matches(msg, keys.Direction):
		m.dispatch(playback.ToggleDirection())
	case key.Matches(msg, keys.LoopMode):
		m.dispatch(playback.ToggleLoopMode())

	case key.Matches(msg, keys.SpeedUp):
		m.dispatch(playback.NudgeSpeed(speedNudge))
	case key.Matches(msg, keys.SpeedDown):
		m.dispatch(playback.NudgeSpeed(-speedNudge))
	case key.Matches(msg, keys.SpeedPreset):
		if i := strings.Index("1234", msg.String()); i >= 0 && i < len(playback.SpeedPresets) {
			m.dispatch(playback.SetSpeedPreset(playback.SpeedPresets[i]))
		}
	case key.Matches(msg, keys.LastPreset):
		if i := strings.Index("!@#$", msg.String()); i >= 0 && i < len(LastFramePresets) {
			m.dispatch(playback.SetLastFrames(LastFramePresets[i]))
		}

	case key.Matches(msg, keys.StartDown):
		m.nudgeRange(-1, 0)
	case key.Matches(msg, keys.StartUp):
		m.nudgeRange(1, 0)
	case key.Matches(msg, keys.EndDown):
		m.nudgeRange(0, -1)
	case key.Matches(msg, keys.EndUp):
		m.nudgeRange(0, 1)

	case key.Matches(msg, keys.LastFrames):
		return m.prompt(inputLast)
	case key.Matches(msg, keys.Range):
		return m.prompt(inputRange)
	case key.Matches(msg, keys.Scrub):
		return m.prompt(inputScrub)

	case key.Matches(msg, keys.Black):
		m.dispatch(playback.ToggleBlack())
	case key.Matches(msg, keys.Aspect):
		policy := output.Stretch
		if m.presenter.Policy() == output.Stretch {
			policy = output.Fit
		}
		m.presenter.SetPolicy(policy)
		m.presenter.Present(m.ctrl.State().Label())
		m.refreshPreview()

	case key.Matches(msg, keys.OutputSize):
		return m.prompt(inputSize)

	case key.Matches(msg, keys.Open):
		return m, func() tea.Msg { return OpenFolder{} }
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m Model) prompt(mode inputMode) (Model, tea.Cmd) {
	m.mode = mode
	m.input.Reset()
	m.input.Prompt, m.input.Placeholder = mode.prompt()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := theme.DefaultKeyMap

	switch {
	case key.Matches(msg, keys.Back):
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	case key.Matches(msg, keys.Select) && m.mode == inputSize:
		m.mode = inputNone
		m.input.Blur()
		m.resize(m.input.Value())
		return m, nil
	case key.Matches(msg, keys.Select):
		cmd, err := parseInput(m.mode, m.input.Value())
		m.mode = inputNone
		m.input.Blur()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
		m.dispatch(cmd)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize applies a typed output resolution and republishes the frame.
// Invalid sizes leave the output unchanged and are reported in the footer.
func (m *Model) resize(text string) {
	w, h, err := parseSize(text)
	if err == nil {
		err = m.presenter.Resize(w, h)
	}
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""
	m.presenter.Present(m.ctrl.State().Label())
}

// nudgeRange moves the range start or end by one frame.
func (m *Model) nudgeRange(dStart, dEnd int) {
	st := m.ctrl.State().Clamped()
	if st.Len() == 0 {
		return
	}
	m.dispatch(playback.SetRange(max(1, st.Start+1+dStart), max(1, st.End+1+dEnd)))
}

func (m *Model) dispatch(cmd playback.Command) {
	wasBlack := m.ctrl.State().Black
	ch := m.ctrl.Dispatch(cmd, time.Now())
	m.apply(ch, ch.State.Black != wasBlack)
}

// apply brings the loaded image, output and preview in line with a state
// change. A frame that fails to decode is logged and the previous image
// stays up.
func (m *Model) apply(ch playback.Change, force bool) {
	st := ch.State
	m.presenter.SetBlack(st.Black)
	changed := force

	if ch.FramesChanged && st.Len() == 0 && m.presenter.Current() != nil {
		m.presenter.Clear()
		m.loadedPath = ""
		changed = true
	}
	if ch.IndexChanged || ch.FramesChanged {
		if path, ok := st.Current(); ok && path != m.loadedPath {
			img, err := m.loader.Load(path)
			if err != nil {
				m.logger.Warn("cannot load frame", "path", path, "err", err)
				m.notice = "cannot decode " + filepath.Base(path)
			} else {
				m.presenter.SetImage(img)
				m.loadedPath = path
			}
			changed = true
		}
	}

	if changed {
		m.presenter.Present(st.Label())
		m.refreshPreview()
	}
}

func (m Model) previewSize() (int, int) {
	// header (3), timeline, status bar, help line
	return m.width, m.height - 6
}

func (m *Model) refreshPreview() {
	cols, rows := m.previewSize()
	black := m.presenter.Black()
	img := m.presenter.Current()
	if black {
		img = nil
	}
	k := previewKey{
		img:    img,
		cols:   cols,
		rows:   rows,
		black:  black,
		empty:  m.ctrl.State().Len() == 0,
		policy: m.presenter.Policy(),
	}
	if k == m.previewKey && m.preview != "" {
		return
	}
	m.previewKey = k

	switch {
	case cols <= 0 || rows <= 0:
		m.preview = ""
	case k.empty && !black:
		m.preview = render.Placeholder("no frames (press o to open a folder)", cols, rows)
	default:
		m.preview = m.renderer.Image(img, cols, rows, k.policy)
	}
}

func (m Model) statusInfo() components.Status {
	w, h := m.presenter.Size()
	info := components.Status{
		OutputWidth:  w,
		OutputHeight: h,
		Aspect:       m.presenter.Policy().String(),
		Share:        m.shareAddr,
	}
	if m.share != nil {
		info.Clients = m.share.ClientCount()
	}
	return info
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	st := m.ctrl.State()
	header := components.RenderHeader(m.Dir(), st.Label(), m.width)
	timeline := components.RenderTimeline(st, m.width)
	status := components.RenderStatusBar(st, m.statusInfo(), m.width)

	var footer string
	switch {
	case m.mode != inputNone:
		footer = theme.StylePrompt.Render(m.input.View())
	case m.notice != "":
		footer = theme.StyleError.Render(m.notice)
	default:
		footer = theme.StyleHelp.Render(m.help.View(theme.DefaultKeyMap))
	}

	return strings.Join([]string{header, m.preview, timeline, status, footer}, "\n")
}

func (m Model) helpView() string {
	return theme.StyleBorder.Width(max(m.width-4, 20)).Render(RenderMarkdown(helpMarkdown))
}
