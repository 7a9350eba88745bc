// Package logger provides the process logger and request-scoped logging
// helpers.
package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dantecodex/graph-mongo/internal/config"
	obscontext "github.com/dantecodex/graph-mongo/internal/observability/context"
)

// New builds the root zap logger: JSON in production, console elsewhere.
func New(cfg config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// FromContext returns the global logger enriched with the request ID and,
// when a span is recording, the otel trace and span IDs.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		log = log.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return log
}

var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(func(log *zap.Logger) {
		zap.ReplaceGlobals(log)
	}),
)
