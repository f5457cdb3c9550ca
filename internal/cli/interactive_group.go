package cli

import "github.com/spf13/cobra"

// interactiveCmd groups the commands editing the interactive prefix list.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Manage interactive command prefixes",
	Long:  "Commands starting with one of these prefixes get the terminal instead of having their output captured.",
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
