// Package logging sets up the process wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level slog.Level

	// FilePath switches output from Stderr to a rotated file.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:      slog.LevelInfo,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// FromEnv applies LOG_LEVEL and LOG_FILE. A LOG_LEVEL slog cannot parse
// leaves the level unchanged.
func (c Config) FromEnv() Config {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			c.Level = lvl
		}
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.FilePath = v
	}

	return c
}

// Setup installs the default slog logger. The returned cleanup closes the
// log file, if any.
func Setup(cfg Config) (func() error, error) {
	w, cleanup, err := cfg.output()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level})))

	return cleanup, nil
}

func (c Config) output() (io.Writer, func() error, error) {
	if c.FilePath == "" {
		if c.Stderr != nil {
			return c.Stderr, func() error { return nil }, nil
		}
		return os.Stderr, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(c.FilePath), 0755); err != nil {
		return nil, nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   c.FilePath,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
		LocalTime:  true,
	}

	return lj, lj.Close, nil
}
