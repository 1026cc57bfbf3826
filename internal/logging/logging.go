// Package logging builds the logrus logger shared by the client and the dev
// server. The terminal UI owns stdout, so client logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jask/userdesk/internal/config"
)

// NewFileLogger returns a logger writing to cfg.File, or a discarding logger
// when no file is configured. The returned close func is never nil.
func NewFileLogger(cfg config.LogConfig) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	if err := setLevel(l, cfg.Level); err != nil {
		return nil, nil, err
	}

	if cfg.File == "" {
		l.SetOutput(io.Discard)
		return l, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	return l, f.Close, nil
}

// NewStderrLogger is used by processes that do not draw a UI.
func NewStderrLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if err := setLevel(l, cfg.Level); err != nil {
		return nil, err
	}
	return l, nil
}

func setLevel(l *logrus.Logger, level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}
