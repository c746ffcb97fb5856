package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error); unknown values mean info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	logger.SetLevel(ParseLevel(GetEnv("LOG_LEVEL", "info")))
	return logger
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
