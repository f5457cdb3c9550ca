package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keymap/internal/config"
)

func init() { rootCmd.AddCommand(configCmd) }

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialize and show the config files",
	Long:  "Create config.yaml and interactive.json with defaults when missing, then print where they are.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if fileExists(path) {
			fmt.Printf("• keeping config.yaml: %s\n", path)
		} else {
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ created config.yaml: %s\n", path)
		}

		list, err := config.Interactive()
		if err != nil {
			return err
		}
		if list.Exists() {
			fmt.Printf("• keeping interactive.json: %s\n", list.Path)
		} else {
			items, err := list.Load()
			if err != nil {
				return err
			}
			if err := list.Save(items); err != nil {
				return err
			}
			fmt.Printf("✓ created interactive.json: %s\n", list.Path)
		}

		if dir, err := config.Dir(); err == nil {
			fmt.Printf("\nconfig directory: %s\n", dir)
		}
		return nil
	},
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
