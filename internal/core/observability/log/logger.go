// Package log wraps zap behind the small surface the replication core
// needs: levelled structured logging plus a process-wide default used by
// decode diagnostics.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects the minimum severity a Logger emits.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	defaultLogger     *Logger
	defaultLoggerOnce sync.Once
)

// Logger is a thin zap wrapper. Fields are plain zap fields.
type Logger struct {
	zapLogger *zap.Logger
}

// New builds a JSON-encoded stderr logger at the given level. The first
// logger built becomes the process default returned by Provide.
func New(level Level) *Logger {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(toZapLevel(level)),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	zapLogger, err := config.Build()
	if err != nil {
		panic(err)
	}

	logger := &Logger{zapLogger: zapLogger}
	defaultLoggerOnce.Do(func() { defaultLogger = logger })
	return logger
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zapLogger: zap.NewNop()}
}

// Provide returns the process default logger, building one at Info level if
// none exists yet.
func Provide() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = &Logger{zapLogger: mustBuildDefault()}
	})
	return defaultLogger
}

func mustBuildDefault() *zap.Logger {
	config := zap.NewProductionConfig()
	config.DisableCaller = true
	zapLogger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return zapLogger
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zapLogger.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zapLogger.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zapLogger.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zapLogger.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zapLogger.Fatal(msg, fields...) }

// With returns a logger that attaches fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zapLogger: l.zapLogger.With(fields...)}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelInfo:
		return zap.InfoLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	case LevelFatal:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
