package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() {
	keysCmd.AddCommand(keysRemoveCmd)
}

var keysRemoveCmd = &cobra.Command{
	Use:   "remove <key>...",
	Short: "Remove key mappings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		changed := false
		for _, a := range args {
			if utf8.RuneCountInString(a) != 1 {
				fmt.Printf("• skipped %q: not a single key\n", a)
				continue
			}
			r, _ := utf8.DecodeRuneInString(a)
			next, err := table.Without(r)
			if err != nil {
				fmt.Printf("• not found: %s\n", a)
				continue
			}
			table, changed = next, true
			fmt.Printf("✓ removed: %s\n", a)
		}
		if !changed {
			fmt.Println("no changes")
			return nil
		}
		cfg.Keymaps = config.Entries(table)
		return config.Save(path, cfg)
	},
}
