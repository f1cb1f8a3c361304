// Package logging builds the zap logger and the zap-backed event observer.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/dotnet-layer/internal/events"
	"github.com/conn-castle/dotnet-layer/internal/messages"
)

// New builds a logger for the given level ("debug", "info", "warn",
// "error") and format ("console" or "json").
func New(level string, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf(messages.LoggingInvalidLevelFmt, level)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf(messages.LoggingInvalidFormatFmt, format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// EventObserver returns an event handler that logs every acquisition
// lifecycle event through log.
func EventObserver(log *zap.Logger) events.Handler {
	return func(e events.Event) {
		fields := []zap.Field{
			zap.String("version", e.Version),
			zap.String("request_id", e.RequestID),
		}
		if e.Path != "" {
			fields = append(fields, zap.String("path", e.Path))
		}
		if e.Detail != "" {
			fields = append(fields, zap.String("detail", e.Detail))
		}
		switch e.Kind {
		case events.KindStarted:
			log.Info("acquisition started", fields...)
		case events.KindCompleted:
			log.Info("acquisition completed", fields...)
		default:
			log.Error("acquisition failed", append(fields, zap.String("kind", string(e.Kind)))...)
		}
	}
}
