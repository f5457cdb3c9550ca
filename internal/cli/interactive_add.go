package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() {
	interactiveCmd.AddCommand(interactiveAddCmd)
}

var interactiveAddCmd = &cobra.Command{
	Use:   "add <prefix>...",
	Short: "Add interactive prefixes",
	Long:  "Add command prefixes, e.g. `keymap interactive add \"git commit -v\"`.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.Interactive()
		if err != nil {
			return err
		}
		added, existed, err := list.Add(args)
		if err != nil {
			return err
		}
		for _, s := range added {
			fmt.Printf("✓ added: %s\n", s)
		}
		for _, s := range existed {
			fmt.Printf("• already present: %s\n", s)
		}
		return nil
	},
}
