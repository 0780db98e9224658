package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a7med3yad/Cartify-Frontend/app"
	"github.com/a7med3yad/Cartify-Frontend/config"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLogger, logFile, err := logger.NewWithFile(cfg.Env, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logFile.Close()
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, closer, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		zapLogger.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closer.Close()
	zapLogger.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	state := app.New(app.Options{
		BaseURL:    cfg.APIBaseURL,
		LoginURL:   cfg.LoginURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Store:      store,
		Logger:     zapLogger,
	})

	// 100 requests per minute with a burst of 50 per client.
	router, limiter := state.Router(app.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      rate.Every(time.Minute / 100),
		Burst:          50,
	})
	if limiter != nil {
		defer limiter.Close()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("storefront listening", zap.String("addr", cfg.Addr), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
}
