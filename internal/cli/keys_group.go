package cli

import "github.com/spf13/cobra"

// keysCmd is a group command to organize keymap management subcommands.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the key table",
	Long:  "List, search, add and remove the menu's key mappings in config.yaml.",
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
