package output

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
)

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
	MaxDimension  = 8192
)

// Frame is one composed output image together with the frame label it shows.
type Frame struct {
	Image *image.RGBA
	Label string
}

// Sink receives composed output frames. Publish must not block.
type Sink interface {
	Publish(f Frame)
}

// Presenter turns the currently loaded image into output frames at a
// configurable resolution, independent of the source image size.
type Presenter struct {
	width  int
	height int
	policy AspectPolicy
	black  bool

	current image.Image
	sinks   []Sink
	logger  *log.Logger
}

// NewPresenter creates a presenter publishing to sinks.
func NewPresenter(width, height int, policy AspectPolicy, logger *log.Logger, sinks ...Sink) *Presenter {
	if logger == nil {
		logger = log.Default()
	}
	p := &Presenter{policy: policy, sinks: sinks, logger: logger}
	if err := p.Resize(width, height); err != nil {
		p.width, p.height = DefaultWidth, DefaultHeight
	}
	return p
}

// AddSink registers another output.
func (p *Presenter) AddSink(s Sink) {
	p.sinks = append(p.sinks, s)
}

// Resize changes the output resolution.
func (p *Presenter) Resize(width, height int) error {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("invalid output size %dx%d", width, height)
	}
	p.width, p.height = width, height
	p.logger.Info("output resized", "width", width, "height", height)
	return nil
}

// Size returns the output resolution.
func (p *Presenter) Size() (int, int) {
	return p.width, p.height
}

// Policy returns the aspect policy.
func (p *Presenter) Policy() AspectPolicy {
	return p.policy
}

// SetPolicy changes the aspect policy.
func (p *Presenter) SetPolicy(policy AspectPolicy) {
	p.policy = policy
}

// SetBlack suppresses image output without affecting playback.
func (p *Presenter) SetBlack(black bool) {
	p.black = black
}

// Black reports whether output is suppressed.
func (p *Presenter) Black() bool {
	return p.black
}

// SetImage replaces the image to present. A nil image keeps the previous
// one, so a failed decode holds the last good frame.
func (p *Presenter) SetImage(img image.Image) {
	if img != nil {
		p.current = img
	}
}

// Clear drops the current image, e.g. when the frame set becomes empty.
func (p *Presenter) Clear() {
	p.current = nil
}

// Current returns the image being presented, or nil.
func (p *Presenter) Current() image.Image {
	return p.current
}

// Render composes the output frame without publishing it.
func (p *Presenter) Render() *image.RGBA {
	src := p.current
	if p.black {
		src = nil
	}
	return Compose(src, p.width, p.height, p.policy, nil)
}

// Present composes the current frame and hands it to every sink.
func (p *Presenter) Present(label string) {
	if len(p.sinks) == 0 {
		return
	}
	f := Frame{Image: p.Render(), Label: label}
	for _, s := range p.sinks {
		s.Publish(f)
	}
}
