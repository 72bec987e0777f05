package app

import (
	"context"
	"log/slog"
)

// Level is the severity of an application log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log writes msg at level to the application log.
func (a *App) Log(ctx context.Context, level Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	a.Logger().Log(ctx, level.slog(), msg, args...)
}

// LogW logs a warning.
func (a *App) LogW(ctx context.Context, msg string, args ...any) {
	a.Log(ctx, LevelWarning, msg, args...)
}

// LogE logs an error.
func (a *App) LogE(ctx context.Context, msg string, args ...any) {
	a.Log(ctx, LevelError, msg, args...)
}

// Logger returns the application logger. Record decoding writes its
// diagnostics here.
func (a *App) Logger() *slog.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}
