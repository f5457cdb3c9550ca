package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() {
	interactiveCmd.AddCommand(interactiveRemoveCmd)
}

var interactiveRemoveCmd = &cobra.Command{
	Use:   "remove <prefix>...",
	Short: "Remove interactive prefixes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.Interactive()
		if err != nil {
			return err
		}
		removed, missing, err := list.Remove(args)
		if err != nil {
			return err
		}
		for _, s := range removed {
			fmt.Printf("✓ removed: %s\n", s)
		}
		for _, s := range missing {
			fmt.Printf("• not found: %s\n", s)
		}
		if len(removed) == 0 && len(missing) == 0 {
			fmt.Println("no changes")
		}
		return nil
	},
}
