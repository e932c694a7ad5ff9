package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// createLogger builds the console (or JSON) logger. Unknown levels fall back
// to info; the configuration has already been validated by then.
func createLogger(w io.Writer, level string, jsonFormat bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	opts := log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}
	if jsonFormat {
		opts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, opts)
}
