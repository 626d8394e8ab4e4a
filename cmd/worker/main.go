package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/config"
	workerHandler "github.com/fhuszti/katasu-ms-go/internal/handler/worker"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/storage"
	"github.com/fhuszti/katasu-ms-go/internal/task"
	imageSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/image"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(cfg)
	purgeSvc := imageSvc.NewFilePurger(strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypePurgeImageFiles, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParsePurgeImageFilesPayload(t)
		if err != nil {
			// a malformed payload will never succeed
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return workerHandler.PurgeImageFilesHandler(ctx, p, purgeSvc)
	})

	runWorker(ctx, mux, cfg)
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.PublicBaseURL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:     4,
		ShutdownTimeout: 30 * time.Second,
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks, wait for in-flight ones up to ShutdownTimeout
	srv.Shutdown()
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
