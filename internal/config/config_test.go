package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

var requiredEnv = map[string]string{
	"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
	"MARIADB_MAX_OPEN_CONN":     "10",
	"MARIADB_MAX_IDLE_CONNS":    "5",
	"MARIADB_CONN_MAX_LIFETIME": "30",
	"SERVER_PORT":               "8080",
	"MINIO_ENDPOINT":            "localhost:9000",
	"MINIO_ACCESS_KEY":          "minio",
	"MINIO_SECRET_KEY":          "minio123",
	"IMAGES_BUCKET":             "images",
}

// isolate moves into a temp dir so no real .env is read, and resets viper.
func isolate(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func setEnv(t *testing.T, env map[string]string) {
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Success(t *testing.T) {
	isolate(t)
	setEnv(t, requiredEnv)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MariaDBDSN != requiredEnv["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", requiredEnv["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 10 {
		t.Errorf("MaxOpenConns: expected %d, got %d", 10, cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("MaxIdleConns: expected %d, got %d", 5, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.MinioEndpoint != "localhost:9000" || cfg.MinioUseSSL {
		t.Errorf("Minio: got %q ssl=%v", cfg.MinioEndpoint, cfg.MinioUseSSL)
	}

	// defaults
	if cfg.CacheUserTTL != time.Hour || cfg.CacheImageTTL != time.Hour {
		t.Errorf("cache TTLs: got %v, %v; want 1h, 1h", cfg.CacheUserTTL, cfg.CacheImageTTL)
	}
	if cfg.ImageURLExpiry != 2*time.Hour {
		t.Errorf("ImageURLExpiry: got %v; want 2h", cfg.ImageURLExpiry)
	}
	if cfg.ImagesPageSize != 24 {
		t.Errorf("ImagesPageSize: got %d; want 24", cfg.ImagesPageSize)
	}
	if cfg.AvatarsBucket != "images" {
		t.Errorf("AvatarsBucket: got %q; want images", cfg.AvatarsBucket)
	}
	if !reflect.DeepEqual(cfg.Buckets(), []string{"images"}) {
		t.Errorf("Buckets() = %v", cfg.Buckets())
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr: got %q; want empty", cfg.RedisAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	setEnv(t, requiredEnv)
	setEnv(t, map[string]string{
		"MINIO_USE_SSL":    "true",
		"AVATARS_BUCKET":   "avatars",
		"REDIS_ADDR":       "localhost:6379",
		"CACHE_IMAGE_TTL":  "600",
		"IMAGE_URL_EXPIRY": "900",
		"IMAGES_PAGE_SIZE": "12",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.MinioUseSSL || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("got ssl=%v redis=%q", cfg.MinioUseSSL, cfg.RedisAddr)
	}
	if cfg.CacheImageTTL != 10*time.Minute || cfg.ImageURLExpiry != 15*time.Minute || cfg.ImagesPageSize != 12 {
		t.Errorf("got ttl=%v expiry=%v page=%d", cfg.CacheImageTTL, cfg.ImageURLExpiry, cfg.ImagesPageSize)
	}
	if !reflect.DeepEqual(cfg.Buckets(), []string{"images", "avatars"}) {
		t.Errorf("Buckets() = %v", cfg.Buckets())
	}
}

func TestLoad_URLExpiryMustOutliveCache(t *testing.T) {
	isolate(t)
	setEnv(t, requiredEnv)
	setEnv(t, map[string]string{"CACHE_IMAGE_TTL": "3600", "IMAGE_URL_EXPIRY": "3600"})

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "IMAGE_URL_EXPIRY") {
		t.Fatalf("expected IMAGE_URL_EXPIRY error, got %v", err)
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			isolate(t)
			for k, v := range requiredEnv {
				if k == missing {
					continue
				}
				t.Setenv(k, v)
			}
			// t.Setenv restores the outer value, so clear it explicitly
			t.Setenv(missing, "")
			_ = os.Unsetenv(missing)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for missing %s, got nil", missing)
			}
			if want := missing + " is required"; err.Error() != want {
				t.Errorf("error = %q; want %q", err.Error(), want)
			}
		})
	}
}
