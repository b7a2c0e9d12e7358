package engine

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv names the environment variable read by ConfigureLogging.
const LogLevelEnv = "WIDGETREPLACE_LOG_LEVEL"

var logLevel = new(slog.LevelVar)

// ConfigureLogging installs a text handler writing to w as the default
// slog logger. The level defaults to Info and can be overridden through
// the WIDGETREPLACE_LOG_LEVEL environment variable.
func ConfigureLogging(w io.Writer) {
	logLevel.Set(slog.LevelInfo)
	if lvl, ok := ParseLogLevel(os.Getenv(LogLevelEnv)); ok {
		logLevel.Set(lvl)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel changes the level of the logger set up by ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLogLevel maps DEBUG, INFO, WARN and ERROR (any case) to a level.
func ParseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return 0, false
}
