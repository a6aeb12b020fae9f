package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

func Init() {
	log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func get() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}

// Set replaces the package logger. Used by tests to capture output.
func Set(l *slog.Logger) {
	log = l
}

func Info(msg string, args ...interface{}) {
	get().Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	get().Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	get().Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	get().Warn(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	get().Error(msg, args...)
	os.Exit(1)
}
