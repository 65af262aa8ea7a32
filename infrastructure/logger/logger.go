package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = newLogger(zapcore.InfoLevel)

func newLogger(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init replaces the process logger with one at the given level ("debug", "info", "warn",
// "error"). Unknown levels fall back to info.
func Init(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	log = newLogger(lvl)
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = log.Sync()
}

// With returns a child logger carrying the given key/value pairs. It is called directly, so
// the caller skip of the package functions is undone.
func With(args ...interface{}) *zap.SugaredLogger {
	return log.Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(args...)
}

func Debugf(template string, args ...interface{}) { log.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { log.Infof(template, args...) }
func Warnf(template string, args ...interface{})  { log.Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { log.Errorf(template, args...) }
func Fatalf(template string, args ...interface{}) { log.Fatalf(template, args...) }
