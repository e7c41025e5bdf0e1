package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger
	Sugar *zap.SugaredLogger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	Init("info")
}

// Init configures the global JSON logger at the given level ("debug", "info", ...)
func Init(lvl string) {
	SetLevel(lvl)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level)

	Log = zap.New(core, zap.AddCaller())
	Sugar = Log.Sugar()
}

// SetLevel changes the level of the global logger; unknown names fall back to info
func SetLevel(lvl string) {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(lvl)))
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	level.SetLevel(parsed)
}

// Use replaces the global logger, mainly for tests
func Use(l *zap.Logger) {
	Log = l
	Sugar = l.Sugar()
}

func Sync() {
	_ = Log.Sync()
}

// Package-level functions for easy access
func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }
