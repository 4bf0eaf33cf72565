package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Verbose runs at debug level;
// everything else at warn, so normal runs stay quiet on stderr.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func (cfg *MainConfig) logger() *log.Logger {
	level := log.WarnLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	return newLogger(os.Stderr, level)
}
