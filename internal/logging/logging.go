// Package logging builds the logrus logger shared by the CLI, the store and
// the HTTP server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config selects level (debug, info, warn, error), format (text or json) and
// output (stderr, stdout, or a file path).
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// New returns a logger for cfg. The returned closer releases a log file when
// one was opened and is a no-op otherwise.
func New(cfg Config) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	noop := func() error { return nil }

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, noop, err
	}
	log.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, noop, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	switch out := strings.TrimSpace(cfg.Output); strings.ToLower(out) {
	case "", "stderr":
		log.SetOutput(os.Stderr)
	case "stdout":
		log.SetOutput(os.Stdout)
	case "discard", "none":
		log.SetOutput(io.Discard)
	default:
		f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return log, f.Close, nil
	}
	return log, noop, nil
}

func parseLevel(s string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return logrus.WarnLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.WarnLevel, fmt.Errorf("unknown log level %q", s)
	}
}
