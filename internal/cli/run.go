package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"keymap/internal/app"
	"keymap/internal/editor"
	"keymap/internal/keymap"
	"keymap/internal/runner"
)

var runInput string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "answer for the mapping's prompt")
}

var runCmd = &cobra.Command{
	Use:   "run <key>",
	Short: "Run one mapping without the menu",
	Long:  "Run the mapping bound to <key>. Mappings with a prompt take their answer from --input.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if utf8.RuneCountInString(args[0]) != 1 {
			return fmt.Errorf("key %q must be a single character", args[0])
		}
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		key, _ := utf8.DecodeRuneInString(args[0])
		km, ok := table.Lookup(key)
		if !ok {
			return fmt.Errorf("%w %q", keymap.ErrNotFound, key)
		}
		if km.HasPrompt() && strings.TrimSpace(runInput) == "" {
			return fmt.Errorf("mapping %q asks %q; pass the answer with --input: %w", key, km.Prompt, editor.ErrEmptyInput)
		}
		r, err := app.NewRunner(cfg)
		if err != nil {
			return err
		}
		out, err := app.RunMapping(cmd.Context(), r, km, runInput, cfg.Placeholder)
		if errors.Is(err, runner.ErrInterrupted) {
			return &app.ExitError{Code: 130}
		}
		if err != nil {
			return err
		}
		if !out.Status.Success() {
			return &app.ExitError{Code: app.ExitCode(out.Status)}
		}
		return nil
	},
}
