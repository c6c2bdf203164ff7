package logger

import (
	"roast_agent/internal/app/port"

	"go.uber.org/zap"
)

// zapAdapter implements port.Logger on top of a sugared zap logger so that
// services can log key/value pairs without importing zap.
type zapAdapter struct {
	s *zap.SugaredLogger
}

// NewAdapter wraps z as a port.Logger.
func NewAdapter(z *zap.Logger) port.Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &zapAdapter{s: z.Sugar()}
}

// Info logs an informational message.
func (a *zapAdapter) Info(msg string, args ...any) {
	a.s.Infow(msg, args...)
}

// Debug logs a debug message.
func (a *zapAdapter) Debug(msg string, args ...any) {
	a.s.Debugw(msg, args...)
}

// Warn logs a warning.
func (a *zapAdapter) Warn(msg string, args ...any) {
	a.s.Warnw(msg, args...)
}

// Error logs an error.
func (a *zapAdapter) Error(msg string, args ...any) {
	a.s.Errorw(msg, args...)
}
