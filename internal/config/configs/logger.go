package configs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger selects the slog handler and its minimum level. LOG_FORMAT is
// "text" or "json"; LOG_LEVEL is one of debug, info, warn or error.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
	"err":     slog.LevelError,
}

// SlogLevel returns the configured level, or info when it is not recognised.
func (c Logger) SlogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(c.Level))]; ok {
		return l
	}
	return slog.LevelInfo
}

// NewHandler builds the handler writing to w. Any format other than json
// gets the text handler.
func (c Logger) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(strings.TrimSpace(c.Format), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
