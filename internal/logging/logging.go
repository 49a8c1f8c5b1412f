// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/zulandar/minivault/internal/config"
	"golang.org/x/term"
)

// New returns a logrus logger writing to out at the configured level.
// FormatAuto picks the text formatter for terminals and JSON otherwise.
func New(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	format := cfg.Format
	if format == config.FormatAuto || format == "" {
		format = config.FormatJSON
		if isTerminal(out) {
			format = config.FormatText
		}
	}

	switch format {
	case config.FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case config.FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Packages use it when no
// logger is injected.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
