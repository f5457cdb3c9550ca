package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"keymap/internal/config"
	"keymap/internal/keymap"
	"keymap/internal/settings"
)

var (
	addKey         string
	addCommand     string
	addDescription string
	addPrompt      string
	addReplace     bool
)

func init() {
	keysCmd.AddCommand(keysAddCmd)
	f := keysAddCmd.Flags()
	f.StringVarP(&addKey, "key", "k", "", "trigger key (one printable character)")
	f.StringVarP(&addCommand, "command", "c", "", "shell command; {} is replaced by the prompt answer")
	f.StringVarP(&addDescription, "description", "d", "", "menu text (defaults to the command)")
	f.StringVarP(&addPrompt, "prompt", "p", "", "ask for one line of input before running")
	f.BoolVar(&addReplace, "replace", false, "replace an existing mapping for the key")
}

var keysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a key mapping",
	Long:  "Add a mapping to config.yaml. Without --key and --command an interactive form asks for the fields.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}

		existing := table
		if addReplace && utf8.RuneCountInString(addKey) == 1 {
			r, _ := utf8.DecodeRuneInString(addKey)
			existing, _ = table.Without(r)
		}

		var km keymap.Keymap
		if addKey == "" || strings.TrimSpace(addCommand) == "" {
			seed := keymap.Keymap{Command: addCommand, Description: addDescription, Prompt: addPrompt}
			if utf8.RuneCountInString(addKey) == 1 {
				seed.Key, _ = utf8.DecodeRuneInString(addKey)
			}
			km, err = settings.KeymapForm(seed, existing)
			if err != nil {
				return err
			}
		} else {
			if err := settings.ValidateKey(addKey, existing); err != nil {
				return fmt.Errorf("key %q: %w", addKey, err)
			}
			km = keymap.New(rune(addKey[0]), strings.TrimSpace(addCommand)).WithPrompt(addPrompt)
			if addDescription != "" {
				km = km.WithDescription(addDescription)
			}
		}

		cfg.Keymaps = config.Entries(table.With(km))
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("✓ added %s\n", km.MenuLine())
		return nil
	},
}
