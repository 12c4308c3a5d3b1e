package internal

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Sync() error
}

type ZapLogger struct {
	s *zap.SugaredLogger
}

func NewZapLogger(s *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{s: s}
}

// NewLogger builds a zap logger for the given environment and level.
// Development gets the console encoder, everything else JSON.
func NewLogger(env, level string) (*ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return NewZapLogger(z.Sugar()), nil
}

// NewNopLogger discards everything. Used by tests and tools that don't log.
func NewNopLogger() *ZapLogger {
	return NewZapLogger(zap.NewNop().Sugar())
}

func (l *ZapLogger) Info(args ...interface{}) {
	l.s.Info(args...)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.s.Infof(format, args...)
}

func (l *ZapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warn(args ...interface{}) {
	l.s.Warn(args...)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.s.Warnf(format, args...)
}

func (l *ZapLogger) Error(args ...interface{}) {
	l.s.Error(args...)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.s.Errorf(format, args...)
}

func (l *ZapLogger) Debug(args ...interface{}) {
	l.s.Debug(args...)
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.s.Debugf(format, args...)
}

func (l *ZapLogger) Fatal(args ...interface{}) {
	l.s.Fatal(args...)
}

func (l *ZapLogger) Fatalf(format string, args ...interface{}) {
	l.s.Fatalf(format, args...)
}

func (l *ZapLogger) Sync() error {
	return l.s.Sync()
}
