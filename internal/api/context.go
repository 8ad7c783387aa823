package api

import (
	"context"

	"github.com/runnerr0/homehub/internal/logger"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	traceIDKey
)

func contextWithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// LoggerFromContext returns the request logger, or a Nop when the request
// did not pass through LoggerMiddleware.
func LoggerFromContext(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey).(logger.Logger); ok {
		return l
	}
	return logger.Nop{}
}

// TraceIDFromContext returns the request trace id, if any.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
