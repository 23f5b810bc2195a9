package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Trailblaze-work/frame-player/internal/frameset"
)

var listFolders bool

var listCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "List the frames of a folder (non-interactive)",
	Long:  "List the frames a folder would play, in playback order, or its subfolders with --folders. Useful for scripting.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := "."
		if len(args) == 1 {
			arg = args[0]
		}
		dir, err := resolveDir(arg)
		if err != nil {
			return err
		}

		if listFolders {
			folders, err := frameset.ListFolders(dir, cfg.Exts())
			if err != nil {
				return err
			}
			return printFolderTable(cmd.OutOrStdout(), folders)
		}

		paths, err := frameset.Scan(dir, cfg.Exts())
		if err != nil {
			return err
		}
		infos, err := frameset.Describe(paths)
		if err != nil {
			return err
		}
		return printFrameTable(cmd.OutOrStdout(), infos)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listFolders, "folders", false, "list subfolders and their frame counts instead")
	rootCmd.AddCommand(listCmd)
}

func printFrameTable(out io.Writer, infos []frameset.FrameInfo) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSIZE\tMODIFIED")
	for _, f := range infos {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			f.Index+1,
			f.Name,
			formatBytes(f.Size),
			f.ModTime.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

func printFolderTable(out io.Writer, folders []frameset.Folder) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFRAMES\tMODIFIED\tPATH")
	for _, f := range folders {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			f.Name,
			f.Frames,
			f.ModTime.Format("2006-01-02 15:04"),
			f.Path,
		)
	}
	return w.Flush()
}

func formatBytes(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.0fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
