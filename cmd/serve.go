package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/output"
	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/ui/player"
)

// defaultShareAddr is used by serve when --share is not given.
const defaultShareAddr = ":8420"

var serveCmd = &cobra.Command{
	Use:   "serve <folder>",
	Short: "Play a folder headless, publishing to the share server",
	Long:  "Play a folder without a terminal UI. The output frame is published over HTTP/WebSocket and clients control the transport.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args[0])
		if err != nil {
			return err
		}
		addr := cfg.ShareAddr
		if addr == "" {
			addr = defaultShareAddr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("starting share server: %w", err)
		}

		logger := log.Default()
		source := frameset.Open(dir, cfg.Exts(), cfg.PollInterval, cfg.Watch, logger.WithPrefix("frames"))
		defer source.Close()

		cmds := make(chan playback.Command, 16)
		server := output.NewServer(
			output.WithServerLogger(logger.WithPrefix("share")),
			output.WithCommandHandler(func(c playback.Command) {
				select {
				case cmds <- c:
				default:
					logger.Warn("dropping remote command", "kind", c.Kind)
				}
			}),
		)
		presenter := output.NewPresenter(cfg.Width, cfg.Height, cfg.Policy(), logger.WithPrefix("output"), server)

		ctrl := playback.NewController(
			playback.WithProvider(source),
			playback.WithLogger(logger.WithPrefix("playback")),
		)
		ctrl.Subscribe(presentChanges(presenter, frameset.NewLoader(), logger))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		errc := make(chan error, 1)
		go func() {
			errc <- server.Serve(ctx, ln)
			cancel()
		}()

		now := time.Now()
		if cfg.Speed > 0 {
			ctrl.Dispatch(playback.SetSpeedPreset(cfg.Speed), now)
		}
		ctrl.Dispatch(playback.SetPlaying(true), now)

		runHeadless(ctx, ctrl, cmds, player.TickInterval)
		return <-errc
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// presentChanges returns a listener that loads the frame under the cursor
// and publishes it whenever the state changes.
func presentChanges(p *output.Presenter, loader *frameset.Loader, logger *log.Logger) playback.Listener {
	return func(ch playback.Change) {
		p.SetBlack(ch.State.Black)
		path, ok := ch.State.Current()
		if !ok {
			p.Clear()
		} else if ch.IndexChanged || ch.FramesChanged || p.Current() == nil {
			img, err := loader.Load(path)
			if err != nil {
				logger.Warn("cannot decode frame", "path", path, "err", err)
			}
			p.SetImage(img)
		}
		p.Present(ch.State.Label())
	}
}

// runHeadless drives the controller from a ticker and a command channel
// until ctx is done.
func runHeadless(ctx context.Context, ctrl *playback.Controller, cmds <-chan playback.Command, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-cmds:
			ctrl.Dispatch(c, time.Now())
		case now := <-ticker.C:
			ctrl.Tick(now)
		}
	}
}
