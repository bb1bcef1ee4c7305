package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide sugared logger. It is a no-op until Init runs,
// so library code may log unconditionally.
var Log = zap.NewNop().Sugar()

// Init routes logs to stdout and a rolling file (LOG_FILE, default
// nexopoly.log).
func Init() {
	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = "nexopoly.log"
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	enc := zapcore.NewConsoleEncoder(encCfg)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(lj), zapcore.DebugLevel),
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
	)
	Log = zap.New(core, zap.AddCaller()).Sugar()
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
