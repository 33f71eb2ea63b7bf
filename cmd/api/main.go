// Command api runs the OneStop HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HarishP23/OneStop/internal/auth"
	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/server"
	"github.com/HarishP23/OneStop/internal/validation"
)

// @title OneStop API
// @version 1.0
// @description Job board API for accounts, jobs, job applications and resumes.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	auth.Configure(auth.Settings{
		SecretKey:   cfg.SecretKey,
		TokenTTL:    cfg.TokenTTL,
		AuthLogFile: cfg.AuthLogFile,
	})
	if err := validation.Register(); err != nil {
		logger.Fatal("failed to register validators", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	s, err := server.NewMyServer(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
	defer s.Close()

	srv := server.NewServer(s)

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Info("server exited")
}
