package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HarishP23/OneStop/internal/auth"
	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/controller/file"
	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/mailer"
)

// MyServer holds the dependencies shared by every route handler
type MyServer struct {
	Config    *config.Config
	DB        *database.DBinstanceStruct
	Storage   file.StorageClient
	Redis     *redis.Client
	Blacklist auth.JwtBlacklistStore
	Mailer    mailer.Notifier
}

// NewMyServer connects the database and the optional redis, bucket and SMTP backends
func NewMyServer(ctx context.Context, cfg *config.Config) (*MyServer, error) {
	db, err := database.GetMainDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	s := &MyServer{
		Config: cfg,
		DB:     db,
		Mailer: mailer.New(cfg.SMTP),
	}

	s.Storage, err = file.NewStorageClient(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage failed to initialize: %w", err)
	}
	if s.Storage == nil {
		logger.Info("no storage driver configured, file content is kept in the database")
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		s.Redis = redis.NewClient(opts)
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis is not reachable, rate limiting fails open until it recovers")
		}
		s.Blacklist = auth.NewRedisBlacklistStore(s.Redis)
	} else {
		s.Blacklist = auth.NewInMemoryBlacklistStore()
	}

	if !s.Mailer.Enabled() {
		logger.Info("SMTP_HOST is not set, application emails are disabled")
	}

	return s, nil
}

// NewServer construct new http.Server serving every route of s
func NewServer(s *MyServer) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close releases every backend connection
func (s *MyServer) Close() {
	if store, ok := s.Blacklist.(*auth.InMemoryBlacklistStore); ok {
		store.Close()
	}
	if closer, ok := s.Storage.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage client")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			logger.WithError(err).Warn("failed to close database")
		}
	}
}
