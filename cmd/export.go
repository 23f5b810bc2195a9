package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/frame-player/internal/export"
	"github.com/Trailblaze-work/frame-player/internal/frameset"
	"github.com/Trailblaze-work/frame-player/internal/playback"
)

var (
	exportMode      string
	exportOutput    string
	exportCols      int
	exportRows      int
	exportRange     string
	exportLast      int
	exportLoop      string
	exportDirection string
)

var exportCmd = &cobra.Command{
	Use:   "export <folder>",
	Short: "Export one pass of a folder as an asciinema recording",
	Long:  "Render one pass through the playback range of a folder as an asciinema .cast file, using the terminal preview.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args[0])
		if err != nil {
			return err
		}

		mode, ok := export.ParseTimingMode(exportMode)
		if !ok {
			return fmt.Errorf("unknown timing mode %q", exportMode)
		}

		paths, err := frameset.Scan(dir, cfg.Exts())
		if err != nil {
			return err
		}
		st, err := exportState(paths, time.Now())
		if err != nil {
			return err
		}

		opts := export.DefaultOptions()
		opts.TimingMode = mode
		opts.Policy = cfg.Policy()
		if exportCols > 0 {
			opts.Width = exportCols
		}
		if exportRows > 0 {
			opts.Height = exportRows
		}
		opts.Output = exportOutput
		if opts.Output == "" {
			opts.Output = filepath.Base(dir) + ".cast"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exporting folder: %s\n", dir)
		fmt.Fprintf(out, "  Frames: %d (%s)\n", export.PassLength(st), st.Label())
		fmt.Fprintf(out, "  Mode: %s\n", opts.TimingMode)
		fmt.Fprintf(out, "  Output: %s\n", opts.Output)

		if err := export.GenerateCast(st, dir, frameset.NewLoader(), opts); err != nil {
			return fmt.Errorf("generating cast: %w", err)
		}

		fmt.Fprintf(out, "  Done: %s\n", export.FormatCastInfo(opts.Output))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMode, "mode", string(export.TimingRealtime), "timing mode: realtime, compressed, fast, instant")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default <folder>.cast)")
	exportCmd.Flags().IntVar(&exportCols, "cols", 0, "terminal columns (default 120)")
	exportCmd.Flags().IntVar(&exportRows, "rows", 0, "terminal rows (default 40)")
	exportCmd.Flags().StringVar(&exportRange, "range", "", "playback range as start-end, 1-based")
	exportCmd.Flags().IntVar(&exportLast, "last", 0, "play only the last N frames")
	exportCmd.Flags().StringVar(&exportLoop, "loop", "loop", "loop mode: loop, ping-pong")
	exportCmd.Flags().StringVar(&exportDirection, "direction", "forward", "direction: forward, backward")

	rootCmd.AddCommand(exportCmd)
}

// exportState builds the transport state described by the export flags.
func exportState(paths []string, now time.Time) (playback.State, error) {
	if len(paths) == 0 {
		return playback.State{}, export.ErrNoFrames
	}

	loop, ok := playback.ParseLoopMode(exportLoop)
	if !ok {
		return playback.State{}, fmt.Errorf("unknown loop mode %q", exportLoop)
	}
	dir, ok := playback.ParseDirection(exportDirection)
	if !ok {
		return playback.State{}, fmt.Errorf("unknown direction %q", exportDirection)
	}

	cmds := []playback.Command{
		playback.SetLoopMode(loop),
		playback.SetDirection(dir),
	}
	if cfg.Speed > 0 {
		cmds = append(cmds, playback.SetSpeedPreset(cfg.Speed))
	}
	switch {
	case exportRange != "" && exportLast > 0:
		return playback.State{}, fmt.Errorf("--range and --last cannot be combined")
	case exportRange != "":
		start, end, err := playback.ParseRange(exportRange)
		if err != nil {
			return playback.State{}, err
		}
		cmds = append(cmds, playback.SetRange(start, end))
	case exportLast > 0:
		cmds = append(cmds, playback.SetLastFrames(exportLast))
	}

	st := playback.New(paths)
	for _, c := range cmds {
		st = st.Apply(c, now)
	}
	if st.Direction == playback.Backward {
		st = st.Scrub(1)
	}
	return st, nil
}
