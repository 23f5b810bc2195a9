package cmd

import (
	"context"
	"fmt"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/logging"
	"github.com/Trailblaze-work/frame-player/internal/output"
	"github.com/Trailblaze-work/frame-player/internal/playback"
	"github.com/Trailblaze-work/frame-player/internal/ui"
	"github.com/Trailblaze-work/frame-player/internal/ui/player"
)

var playCmd = &cobra.Command{
	Use:   "play [folder]",
	Short: "Play a folder interactively",
	Long:  "Open the flipbook player on a folder of images, or on a folder picker when none is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) == 1 {
			var err error
			if dir, err = resolveDir(args[0]); err != nil {
				return err
			}
		}
		return runPlayer(cmd, dir, "")
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// runPlayer starts the interactive player on dir. A non-empty browseRoot
// opens the folder picker there first.
func runPlayer(cmd *cobra.Command, dir, browseRoot string) error {
	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.SetDefault(logger)

	// Bind the share address before the TUI takes over the terminal so
	// a busy port is reported normally.
	var ln net.Listener
	if cfg.ShareAddr != "" {
		if ln, err = net.Listen("tcp", cfg.ShareAddr); err != nil {
			return fmt.Errorf("starting share server: %w", err)
		}
	}

	source := frameset.Open(dir, cfg.Exts(), cfg.PollInterval, cfg.Watch, logger.WithPrefix("frames"))
	defer source.Close()

	presenter := output.NewPresenter(cfg.Width, cfg.Height, cfg.Policy(), logger.WithPrefix("output"))

	var (
		prog   *tea.Program
		server *output.Server
	)
	if ln != nil {
		server = output.NewServer(
			output.WithServerLogger(logger.WithPrefix("share")),
			output.WithCommandHandler(func(c playback.Command) {
				prog.Send(player.RemoteCommand{Command: c})
			}),
		)
		presenter.AddSink(server)
	}

	model := player.New(player.Options{
		Source:    source,
		Presenter: presenter,
		Share:     server,
		ShareAddr: cfg.ShareAddr,
		Speed:     cfg.Speed,
		Logger:    logger,
	})
	app := ui.NewApp(model, cfg.Exts())
	if browseRoot != "" {
		app = ui.NewBrowser(model, browseRoot, cfg.Exts())
	}
	prog = tea.NewProgram(app, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if server != nil {
		go func() {
			if err := server.Serve(ctx, ln); err != nil {
				logger.Error("share server stopped", "err", err)
			}
		}()
	}

	logger.Info("player started", "dir", dir, "share", cfg.ShareAddr)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running player: %w", err)
	}
	return nil
}
