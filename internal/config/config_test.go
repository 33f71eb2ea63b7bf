package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("ALLOW_ORIGIN", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, uint(5), cfg.RateLimitPerSecond)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "", cfg.Storage.Driver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOW_ORIGIN", "https://a.example, https://b.example ,")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "postgres://u:p@db:5432/onestop")
	t.Setenv("STORAGE_DRIVER", "GCS")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("LOGGING", "true")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.DB.UseConnString)
	assert.Equal(t, "postgres://u:p@db:5432/onestop", cfg.DB.ConnString)
	assert.Equal(t, "gcs", cfg.Storage.Driver)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.True(t, cfg.AuthLogFile)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "-3")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("LOGGING", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, uint(5), cfg.RateLimitPerSecond)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.AuthLogFile)
}
