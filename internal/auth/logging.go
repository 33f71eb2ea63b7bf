package auth

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HarishP23/OneStop/internal/logger"
)

var authLogEnabled = strings.EqualFold(os.Getenv("LOGGING"), "true")

// AuthLogPath is where LogAuthAttempt appends when the auth log is enabled
var AuthLogPath = "log/auth.log"

// LogAuthAttempt records an authentication attempt.
// The structured logger always receives it; log/auth.log also gets a line
// "timestamp | level | authType | status | identifier? | message?" when LOGGING=true.
// status: Success|Fail
func LogAuthAttempt(level string, authType string, status string, identifier string, message string) {
	l := logger.With("auth_type", authType, "status", status, "identifier", identifier)
	switch level {
	case "error", "fatal":
		l.Error("auth attempt", "message", message)
	case "warning":
		l.Warn("auth attempt", "message", message)
	case "debug":
		l.Debug("auth attempt", "message", message)
	default:
		l.Info("auth attempt", "message", message)
	}

	settingsMu.RLock()
	enabled := authLogEnabled
	settingsMu.RUnlock()
	if !enabled {
		return
	}

	if err := os.MkdirAll(filepath.Dir(AuthLogPath), 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(AuthLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	ts := time.Now().UTC().Format(time.RFC3339)
	parts := []string{ts, level, authType, status}
	if identifier != "" {
		parts = append(parts, identifier)
	}
	if message != "" {
		parts = append(parts, message)
	}
	_, _ = f.WriteString(strings.Join(parts, " | ") + "\n")
}
