// Package logger provides the shared structured logger for Zyra.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Log is the global logger instance used throughout the app.
var Log *log.Logger

func init() {
	Log = log.New(os.Stderr)
	Log.SetReportTimestamp(true)
	Log.SetLevel(log.InfoLevel)
}

// Configure sets the log level. An explicit level argument wins over the
// ZYRA_LOG_LEVEL environment variable; the default is info.
func Configure(level string) {
	if level == "" {
		level = strings.ToLower(os.Getenv("ZYRA_LOG_LEVEL"))
	}

	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info", "":
		Log.SetLevel(log.InfoLevel)
	case "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	}
}
