package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	server, err := InitializeServer(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		server.Purger.Run(ctx)
	}()

	go func() {
		zapLogger.Info("server starting", zap.String("port", cfg.Port))
		if err := server.App.Listen(":" + cfg.Port); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	if err := server.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	wg.Wait()

	if sqlDB, err := server.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
