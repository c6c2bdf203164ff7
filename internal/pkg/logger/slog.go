package logger

import (
	"log/slog"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSlogHandler returns a slog.Handler that writes records at or above level
// through z. Used for libraries that log via slog.
func NewSlogHandler(z *zap.Logger, level zapcore.Level) slog.Handler {
	return slogzap.Option{
		Level:  slogLevel(level),
		Logger: z,
	}.NewZapHandler()
}

func slogLevel(l zapcore.Level) slog.Level {
	switch {
	case l <= zapcore.DebugLevel:
		return slog.LevelDebug
	case l == zapcore.InfoLevel:
		return slog.LevelInfo
	case l == zapcore.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
