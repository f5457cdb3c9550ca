// Package system holds process-wide helpers: the shared logger and git
// repository inspection.
package system

import (
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It writes to stderr with
// timestamps and only reports warnings until ConfigureLogger says otherwise.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Level:           clog.WarnLevel,
})

// ConfigureLogger applies the CLI logging flags. With a log file the logger
// writes there instead of stderr, which raw mode would garble; the returned
// closer releases the file.
func ConfigureLogger(debug bool, logFile string) (io.Closer, error) {
	if debug {
		Logger.SetLevel(clog.DebugLevel)
		Logger.SetReportCaller(true)
	}
	if logFile == "" {
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	Logger.SetOutput(f)
	Logger.SetFormatter(clog.LogfmtFormatter)
	return f, nil
}
