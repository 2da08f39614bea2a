// Package logging builds the structured JSON logger and the HTTP request
// logging middleware.
package logging

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// New builds a JSON logger writing to stderr. level takes precedence over
// the LOG_LEVEL environment variable; unknown or empty levels mean info.
func New(level string) *zap.Logger {
	return NewWithWriter(level, zapcore.Lock(os.Stderr))
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level string, w zapcore.WriteSyncer) *zap.Logger {
	lvl := ParseLevel(level)

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), w, lvl)
	return zap.New(core, zap.AddCaller())
}

// ParseLevel resolves level, falling back to LOG_LEVEL and then info.
func ParseLevel(level string) zap.AtomicLevel {
	lvl := zap.NewAtomicLevel()
	for _, candidate := range []string{level, os.Getenv("LOG_LEVEL"), defaultLevel} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if err := lvl.UnmarshalText([]byte(candidate)); err == nil {
			return lvl
		}
	}
	return lvl
}

type contextKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
