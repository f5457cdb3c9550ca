package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"keymap/internal/app"
	"keymap/internal/config"
	"keymap/internal/system"
)

var (
	configPath string
	debug      bool
	logFile    string

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "keymap",
	Short: "keymap – one-key command menu",
	Long:  "keymap shows a menu of single-key shortcuts, asks for input when a shortcut needs it and runs the resulting shell command.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := system.ConfigureLogger(debug, logFile)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		logCloser = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: show the menu
		return app.Start(cmd.Context(), app.Options{ConfigPath: configPath})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "config file (default is config.yaml in the keymap config directory)")
	f.BoolVar(&debug, "debug", false, "log at debug level")
	f.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// loadConfig resolves --config and loads it.
func loadConfig() (string, *config.Config, error) {
	path, err := config.Resolve(configPath)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err == nil {
		return 0
	}
	var ee *app.ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
