package logging

import (
	"context"
	"log/slog"
)

// Info, Warn and Error are no-ops on a nil logger so components can run unconfigured in tests.

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// WarnErr is Warn with err attached under FieldError.
func WarnErr(logger *slog.Logger, msg string, err error, args ...any) {
	Warn(logger, msg, withErr(args, err)...)
}

func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger != nil {
		logger.Error(msg, withErr(args, err)...)
	}
}

// ErrorContext logs at error level through the context-aware handler path.
func ErrorContext(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	if logger != nil {
		logger.ErrorContext(ctx, msg, withErr(args, err)...)
	}
}

func withErr(args []any, err error) []any {
	if err == nil {
		return args
	}
	return append(args, FieldError, err)
}
