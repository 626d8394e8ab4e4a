package testutil

import (
	"context"

	"github.com/hibiken/asynq"

	workerHandler "github.com/fhuszti/katasu-ms-go/internal/handler/worker"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/task"
	imageSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/image"
)

// StartWorker starts an asynq worker processing purge tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(strg port.Storage, redisAddr string) func() {
	purgeSvc := imageSvc.NewFilePurger(strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypePurgeImageFiles, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParsePurgeImageFilesPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.PurgeImageFilesHandler(ctx, p, purgeSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
