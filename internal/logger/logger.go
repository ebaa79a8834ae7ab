// Package logger builds the process logger. Output goes to a rotated file
// when one is configured, otherwise to a console writer.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alexanderramin/estimate/internal/config"
)

// New returns a logger at cfg.Level writing to Output(cfg, console).
func New(cfg config.LogConfig, console io.Writer) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(cfg.Level); err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
	}

	out, err := Output(cfg, console)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Output picks the log destination. A configured file is rotated by
// lumberjack and receives JSON lines; otherwise console gets human-readable
// lines.
func Output(cfg config.LogConfig, console io.Writer) (io.Writer, error) {
	if cfg.File == "" {
		if console == nil {
			console = os.Stderr
		}
		return zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly, NoColor: !isTerminal(console)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}
