// Package logger wraps log/slog with the process-wide logger used by the API
// server and the command line tools.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	log *slog.Logger
	mu  sync.RWMutex
)

// Init configures the global logger.
// "production" writes JSON at info level, anything else writes text at debug level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	log = slog.New(handler)
	mu.Unlock()
	slog.SetDefault(log)
}

// GetLogger returns the global logger, initializing a development logger if needed.
func GetLogger() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Init("development")
		return GetLogger()
	}
	return l
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError returns a child logger carrying err under the "error" key.
func WithError(err error) *slog.Logger {
	if err == nil {
		return GetLogger()
	}
	return GetLogger().With("error", err.Error())
}

// HTTPLog logs one served HTTP request.
func HTTPLog(method, path string, status int, duration time.Duration, size int, clientIP string) {
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	GetLogger().Log(context.Background(), level, "http request",
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
		"client_ip", clientIP,
	)
}
