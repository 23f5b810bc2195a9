package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:   "browse [root]",
	Short: "Pick a folder to play interactively",
	Long:  "Open the folder picker at root (default the working directory) and play the folder you choose.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := "."
		if len(args) == 1 {
			arg = args[0]
		}
		root, err := resolveDir(arg)
		if err != nil {
			return err
		}
		return runPlayer(cmd, "", root)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
