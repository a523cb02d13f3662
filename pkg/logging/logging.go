// Package logging builds the process logger from command line settings.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level and destination. An empty File logs to stderr.
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger for cfg. Interactive commands should pass a File,
// otherwise log lines would be drawn over the terminal UI.
func New(cfg Config) (*logrus.Logger, error) {
	l := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(lvl)

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
		}
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(out)
	return l, nil
}

// Discard returns a logger that drops everything, for TUI sessions
// started without a log file.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
