package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/polkiloo/drinkshop/internal/config"
)

// New creates a preconfigured slog.Logger. When LogFile is set output is
// duplicated into a rotating file.
func New(cfg *config.Config) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, rotatingFile(cfg.LogFile))
	}
	return newLogger(out, cfg.LogLevel)
}

func newLogger(out io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
