package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/config"
	"github.com/fhuszti/katasu-ms-go/internal/db"
	"github.com/fhuszti/katasu-ms-go/internal/handler/api"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/katasu-ms-go/internal/middleware"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/renderer"
	"github.com/fhuszti/katasu-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/katasu-ms-go/internal/storage"
	"github.com/fhuszti/katasu-ms-go/internal/task"
	imageSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/image"
	userSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, cfg.Buckets())

	userRepo := mariadb.NewUserRepository(database.DB)
	imageRepo := mariadb.NewImageRepository(database.DB)
	tagRepo := mariadb.NewTagRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled and files are purged inline")
	}
	auth := cMiddleware.WithDSTAuth(cfg.JWTPublicKey)
	rnd := renderer.NewHTTPRenderer()

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Use(cMiddleware.WithUserID())

		getUserSvc := userSvc.NewUserGetter(userRepo, ca, strg, cfg.AvatarsBucket, cfg.CacheUserTTL)
		r.Get("/", api.GetUserHandler(getUserSvc))

		updateUserSvc := userSvc.NewUserUpdater(userRepo, ca)
		r.With(auth).Patch("/", api.UpdateUserHandler(updateUserSvc))

		tagListerSvc := imageSvc.NewTagLister(tagRepo, ca)
		r.Get("/tags", api.ListTagsHandler(tagListerSvc))

		imageListerSvc := imageSvc.NewImageLister(imageRepo, ca, strg, cfg.ImagesPageSize)
		r.Get("/images", api.ListUserImagesHandler(imageListerSvc))
		r.Get("/tags/{tagId}/images", api.ListTagImagesHandler(imageListerSvc))

		imageCounterSvc := imageSvc.NewImageCounter(imageRepo, ca)
		r.Get("/images/count", api.CountImagesHandler(imageCounterSvc))
	})

	r.Route("/images/{imageId}", func(r chi.Router) {
		r.Use(cMiddleware.WithImageID())

		getImageSvc := imageSvc.NewImageGetter(imageRepo, ca, strg, cfg.CacheImageTTL, cfg.ImageURLExpiry)
		r.Get("/", api.GetImageHandler(rnd, getImageSvc))
		r.Get("/placeholder", api.GetPlaceholderHandler(rnd, getImageSvc))

		downloadSvc := imageSvc.NewDownloadLinkGenerator(imageRepo, strg, cfg.ImageURLExpiry)
		r.Get("/download", api.DownloadImageHandler(downloadSvc))

		deleteImageSvc := imageSvc.NewImageDeleter(imageRepo, ca, dispatcher, strg)
		r.With(auth).Delete("/", api.DeleteImageHandler(deleteImageSvc))
	})

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(ctx, db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(cMiddleware.WithRequestID())
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.PublicBaseURL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
