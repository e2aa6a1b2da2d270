package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field aliases zap.Field so call sites outside this package don't import
// zap directly.
type Field = zap.Field

// Logger is a thin wrapper around zap that provides the three log levels
// we need throughout the codebase.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Convenience constructors for the common field types.
func String(key, val string) Field        { return zap.String(key, val) }
func Int(key string, val int) Field       { return zap.Int(key, val) }
func Float64(key string, v float64) Field { return zap.Float64(key, v) }
func Time(key string, t time.Time) Field  { return zap.Time(key, t) }
func Err(err error) Field                 { return zap.Error(err) }

// zapLogger implements Logger on the structured (non-sugared) zap logger,
// so typed field payloads pass through untouched.
type zapLogger struct {
	z *zap.Logger
}

func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }

// NewZapLogger creates a production-ready logger (JSON encoding, level INFO).
func NewZapLogger() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z}, nil
}

// NewNop returns a logger that discards everything. Handy for benchmarks
// and for sweep workers that should stay quiet.
func NewNop() Logger {
	return &zapLogger{z: zap.NewNop()}
}
