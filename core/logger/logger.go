package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	current = newLogger("development", "info")
)

// Init replaces the process logger. env "production" switches to JSON output.
func Init(env, level string) {
	mu.Lock()
	defer mu.Unlock()
	current = newLogger(env, level)
}

func newLogger(env, level string) *slog.Logger {
	opts := charmlog.Options{
		ReportTimestamp: true,
		Level:           parseLevel(level),
	}
	if env == "production" {
		opts.Formatter = charmlog.JSONFormatter
	}
	return slog.New(charmlog.NewWithOptions(os.Stderr, opts))
}

func parseLevel(level string) charmlog.Level {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}

// Slog exposes the underlying logger for libraries that take a *slog.Logger.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debug(msg string, keyvals ...any) {
	log(slog.LevelDebug, msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	log(slog.LevelInfo, msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	log(slog.LevelWarn, msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	log(slog.LevelError, msg, keyvals...)
}

func log(level slog.Level, msg string, keyvals ...any) {
	Slog().Log(context.Background(), level, msg, normalize(keyvals)...)
}

// normalize turns a lone trailing error into an "error" attribute so call
// sites can write logger.Error("Repo:Op", err).
func normalize(keyvals []any) []any {
	if len(keyvals)%2 == 0 {
		return keyvals
	}
	last := keyvals[len(keyvals)-1]
	out := make([]any, 0, len(keyvals)+1)
	out = append(out, keyvals[:len(keyvals)-1]...)
	return append(out, "error", last)
}
