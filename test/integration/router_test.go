package integration

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/cache"
	"github.com/fhuszti/katasu-ms-go/internal/handler/api"
	cMiddleware "github.com/fhuszti/katasu-ms-go/internal/middleware"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/renderer"
	"github.com/fhuszti/katasu-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/katasu-ms-go/internal/task"
	imageSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/image"
	userSvc "github.com/fhuszti/katasu-ms-go/internal/usecase/user"
)

const authHeader = "X-Test-User"

// withTestAuth stands in for the DST token check: the caller is whoever the
// test header names.
func withTestAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get(authHeader); uid != "" {
			r = r.WithContext(context.WithValue(r.Context(), api_context.AuthUserIDKey, uid))
		}
		next.ServeHTTP(w, r)
	})
}

// newRouter mounts the public routes on a Redis backed cache and dispatcher.
func newRouter(t *testing.T, db *sql.DB, dispatcher port.TaskDispatcher) *chi.Mux {
	t.Helper()

	ca := cache.NewCache(GlobalRedisAddr, "")
	strg := GlobalMinio.Strg
	userRepo := mariadb.NewUserRepository(db)
	imageRepo := mariadb.NewImageRepository(db)
	tagRepo := mariadb.NewTagRepository(db)
	rnd := renderer.NewHTTPRenderer()

	r := chi.NewRouter()
	r.Use(cMiddleware.WithRequestID())
	r.NotFound(api.NotFoundHandler())

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Use(cMiddleware.WithUserID())
		r.Get("/", api.GetUserHandler(userSvc.NewUserGetter(userRepo, ca, strg, imagesBucket, time.Hour)))
		r.With(withTestAuth).Patch("/", api.UpdateUserHandler(userSvc.NewUserUpdater(userRepo, ca)))
		r.Get("/tags", api.ListTagsHandler(imageSvc.NewTagLister(tagRepo, ca)))
		lister := imageSvc.NewImageLister(imageRepo, ca, strg, 10)
		r.Get("/images", api.ListUserImagesHandler(lister))
		r.Get("/tags/{tagId}/images", api.ListTagImagesHandler(lister))
		r.Get("/images/count", api.CountImagesHandler(imageSvc.NewImageCounter(imageRepo, ca)))
	})

	r.Route("/images/{imageId}", func(r chi.Router) {
		r.Use(cMiddleware.WithImageID())
		getter := imageSvc.NewImageGetter(imageRepo, ca, strg, time.Hour, 2*time.Hour)
		r.Get("/", api.GetImageHandler(rnd, getter))
		r.Get("/placeholder", api.GetPlaceholderHandler(rnd, getter))
		r.Get("/download", api.DownloadImageHandler(imageSvc.NewDownloadLinkGenerator(imageRepo, strg, time.Hour)))
		r.With(withTestAuth).Delete("/", api.DeleteImageHandler(imageSvc.NewImageDeleter(imageRepo, ca, dispatcher, strg)))
	})

	return r
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: GlobalRedisAddr})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func newDispatcher(t *testing.T) port.TaskDispatcher {
	t.Helper()
	d := task.NewDispatcher(GlobalRedisAddr, "")
	t.Cleanup(func() { _ = d.Close() })
	return d
}
