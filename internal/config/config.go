// Package config holds the player settings and binds them to command-line
// flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/output"
	"github.com/Trailblaze-work/frame-player/internal/playback"
)

// Config is the complete set of user settings.
type Config struct {
	ShareAddr    string // empty disables the share server
	Width        int
	Height       int
	Stretch      bool
	Speed        float64
	Extensions   []string
	PollInterval time.Duration
	Watch        bool
	LogFile      string
	LogLevel     string
}

// Default returns the settings used when no flags are given.
func Default() Config {
	return Config{
		Width:        output.DefaultWidth,
		Height:       output.DefaultHeight,
		Speed:        1,
		Extensions:   append([]string(nil), frameset.DefaultExtensions...),
		PollInterval: frameset.DefaultPollInterval,
		Watch:        true,
		LogLevel:     "info",
	}
}

// BindFlags registers the settings on fs, using the current values as
// defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ShareAddr, "share", c.ShareAddr, "publish the output frame on this address, e.g. :8420")
	fs.IntVar(&c.Width, "width", c.Width, "output width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "output height in pixels")
	fs.BoolVar(&c.Stretch, "stretch", c.Stretch, "stretch frames to the output size instead of letterboxing")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "initial playback speed multiplier (0-4)")
	fs.StringSliceVar(&c.Extensions, "ext", c.Extensions, "image extensions to play")
	fs.DurationVar(&c.PollInterval, "poll", c.PollInterval, "how often to rescan the folder")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "rescan immediately on file-system events")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file for the interactive player (default $TMPDIR/frame-player.log)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Validate checks the settings for values the player cannot work with.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 || c.Width > output.MaxDimension || c.Height > output.MaxDimension {
		return fmt.Errorf("output size %dx%d out of range 1-%d", c.Width, c.Height, output.MaxDimension)
	}
	if c.Speed < 0 || c.Speed > playback.MaxSpeed {
		return fmt.Errorf("speed %v out of range 0-%v", c.Speed, playback.MaxSpeed)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	return nil
}

// Policy is the output aspect policy.
func (c Config) Policy() output.AspectPolicy {
	if c.Stretch {
		return output.Stretch
	}
	return output.Fit
}

// Exts returns the normalized extension list.
func (c Config) Exts() []string {
	return frameset.NormalizeExtensions(c.Extensions)
}
