package playback

import (
	"time"

	"github.com/charmbracelet/log"
)

// Provider supplies the frame set. Poll is called on every tick and
// decides on its own how often to look at the underlying source; it
// reports changed=false when the set is unchanged.
type Provider interface {
	Poll(now time.Time) (frames []string, changed bool, err error)
}

// Change describes what a tick or command did to the state.
type Change struct {
	State         State
	IndexChanged  bool // a different frame is under the cursor
	FramesChanged bool // the frame set was reloaded
}

// Listener is notified after every state change.
type Listener func(Change)

// Controller owns the playback state for a session and fans changes out
// to listeners. It is not safe for concurrent use: every call must come
// from the same goroutine.
type Controller struct {
	state     State
	provider  Provider
	listeners []Listener
	logger    *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithProvider injects the frame-set provider polled on each tick.
func WithProvider(p Provider) Option {
	return func(c *Controller) { c.provider = p }
}

// WithLogger sets the logger used for provider errors.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithState seeds the controller with an initial state.
func WithState(s State) Option {
	return func(c *Controller) { c.state = s }
}

// NewController creates a controller over an empty frame set.
func NewController(opts ...Option) *Controller {
	c := &Controller{state: New(nil)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default().WithPrefix("playback")
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// SetProvider swaps the frame-set provider, e.g. after a folder change.
func (c *Controller) SetProvider(p Provider) {
	c.provider = p
}

// Subscribe registers a listener for state changes.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Load replaces the frame set directly.
func (c *Controller) Load(frames []string) Change {
	before, _ := c.state.Current()
	c.state = c.state.SetFrames(frames)
	after, _ := c.state.Current()
	ch := Change{State: c.state, FramesChanged: true, IndexChanged: before != after || len(frames) > 0}
	c.notify(ch)
	return ch
}

// Tick polls the provider and advances playback. Listeners are notified
// only when something changed.
func (c *Controller) Tick(now time.Time) Change {
	var ch Change
	if c.provider != nil {
		frames, changed, err := c.provider.Poll(now)
		if err != nil {
			c.logger.Warn("frame set poll failed", "err", err)
		} else if changed {
			c.logger.Info("frame set reloaded", "frames", len(frames))
			c.state = c.state.SetFrames(frames)
			ch.FramesChanged = true
			ch.IndexChanged = true
		}
	}

	var moved bool
	c.state, moved = c.state.Advance(now)
	ch.IndexChanged = ch.IndexChanged || moved
	ch.State = c.state

	if ch.IndexChanged || ch.FramesChanged {
		c.notify(ch)
	}
	return ch
}

// Dispatch applies a command and notifies listeners.
func (c *Controller) Dispatch(cmd Command, now time.Time) Change {
	prev := c.state.Clamped().Index
	c.state = c.state.Apply(cmd, now)
	ch := Change{
		State:        c.state,
		IndexChanged: c.state.Clamped().Index != prev,
	}
	c.logger.Debug("command", "kind", cmd.Kind, "frame", c.state.Label())
	c.notify(ch)
	return ch
}

func (c *Controller) notify(ch Change) {
	for _, l := range c.listeners {
		l(ch)
	}
}
