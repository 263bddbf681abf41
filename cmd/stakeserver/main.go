package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft_staker/internal/app/bootstrap"
	"nft_staker/internal/infrastructure/configloader"
	"nft_staker/internal/infrastructure/restapi"
	"nft_staker/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	slogzap "github.com/samber/slog-zap/v2"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Level == "debug")
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	slogLevel, ok := logger.ParseLevel(cfg.Logging.Level)
	slogHandler := slogzap.Option{Level: slogLevel, Logger: zapLogger}.NewZapHandler()
	logger.SetDefault(slog.New(slogHandler))
	if !ok {
		logger.Warn("Invalid log level in config, defaulting to INFO", "level", cfg.Logging.Level)
	}

	logger.Info("NFT staking service starting", "config", cfgPath)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.New(ctx, cfg, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}
	defer app.Close()

	handler := restapi.NewHandler(app.Session, app.Mint, app.Stake, app.Activity, app.Network, zapLogger)
	router := restapi.SetupRouter(handler, app, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr, "network", app.Network.Identifier)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	cancel()
	zapLogger.Info("NFT staking service stopped")
}
