package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() {
	interactiveCmd.AddCommand(interactiveLsCmd)
}

var interactiveLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List interactive prefixes",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.Interactive()
		if err != nil {
			return err
		}
		items, err := list.Load()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("(empty)")
			return nil
		}
		for _, s := range items {
			fmt.Println(s)
		}
		return nil
	},
}
