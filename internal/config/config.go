// Package config reads server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every setting the API server reads at startup.
type Config struct {
	Port         int
	Env          string
	AllowOrigins []string

	SecretKey string
	TokenTTL  time.Duration

	DB DBSettings

	RateLimitPerSecond uint
	RedisURL           string

	Storage StorageSettings
	SMTP    SMTPSettings

	// AuthLogFile enables the append-only auth log at log/auth.log
	AuthLogFile bool
}

// DBSettings holds the PostgreSQL connection parameters.
type DBSettings struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	UseConnString bool
	ConnString    string
}

// StorageSettings selects where uploaded resumes are kept.
// An empty Driver keeps file content in the database.
type StorageSettings struct {
	Driver      string // "", "gcs" or "s3"
	GCSBucket   string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// SMTPSettings configures outgoing notification emails.
// An empty Host disables email.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() *Config {
	rate := getInt("RATE_LIMIT_REQUESTS_PER_SECOND", 5)
	if rate <= 0 {
		rate = 5
	}

	return &Config{
		Port:         getInt("PORT", 8080),
		Env:          getEnv("APP_ENV", "development"),
		AllowOrigins: splitList(getEnv("ALLOW_ORIGIN", "http://localhost:5173")),

		SecretKey: getEnv("SECRET_KEY", ""),
		TokenTTL:  getDuration("TOKEN_TTL", time.Hour),

		DB: DBSettings{
			Host:          getEnv("DB_HOST", ""),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USERNAME", ""),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_DATABASE", ""),
			UseConnString: getBool("USE_CONNECTION_STR", false),
			ConnString:    getEnv("DB_CONNECTION_STR", ""),
		},

		RateLimitPerSecond: uint(rate),
		RedisURL:           getEnv("REDIS_URL", ""),

		Storage: StorageSettings{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "")),
			GCSBucket:   getEnv("GCS_BUCKET", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "auto"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		},

		SMTP: SMTPSettings{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@onestop.local"),
		},

		AuthLogFile: getBool("LOGGING", false),
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
