package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"keymap/internal/config"
	"keymap/internal/tools"
	"keymap/internal/ui"
)

func init() { rootCmd.AddCommand(doctorCmd) }

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the launcher and interactive programs",
	Long:  "Look up the launcher, git and every program named by an interactive prefix in PATH and report their versions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		list, err := config.Interactive()
		if err != nil {
			return err
		}
		prefixes, err := list.Load()
		if err != nil {
			return err
		}

		results := tools.CheckAll(cmd.Context(), tools.Registry(cfg.RunnerLauncher(), prefixes))
		width := 0
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			width, _, _ = term.GetSize(fd)
		}
		fmt.Println(ui.DoctorTable(results, width))

		failed := 0
		for _, r := range results {
			if !r.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("doctor: %d required tool(s) missing or outdated", failed)
		}
		return nil
	},
}
