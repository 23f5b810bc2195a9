package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/frame-player/internal/config"
	"github.com/Trailblaze-work/frame-player/internal/logging"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "frame-player [folder]",
	Short: "Play a folder of images as a flipbook",
	Long: "A terminal flipbook player for image sequences. It plays a folder of stills at a " +
		"configurable speed, direction and loop mode, follows the folder as frames are added, " +
		"and can publish the output frame to other applications over HTTP/WebSocket.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		log.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cfg.BindFlags(rootCmd.PersistentFlags())

	// Default command is play
	rootCmd.RunE = playCmd.RunE
}

// resolveDir turns a folder argument into an absolute path and checks that
// it is a directory.
func resolveDir(arg string) (string, error) {
	dir, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("opening folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a folder", arg)
	}
	return dir, nil
}
