package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	PublicBaseURL  string
	ImagesBucket   string
	AvatarsBucket  string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string

	CacheUserTTL   time.Duration
	CacheImageTTL  time.Duration
	ImageURLExpiry time.Duration
	ImagesPageSize int
}

// Buckets lists every bucket the service needs, without duplicates.
func (s *Settings) Buckets() []string {
	if s.AvatarsBucket == "" || s.AvatarsBucket == s.ImagesBucket {
		return []string{s.ImagesBucket}
	}
	return []string{s.ImagesBucket, s.AvatarsBucket}
}

var required = []string{
	"MARIADB_DSN",
	"MARIADB_MAX_OPEN_CONN",
	"MARIADB_MAX_IDLE_CONNS",
	"MARIADB_CONN_MAX_LIFETIME",
	"SERVER_PORT",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
	"IMAGES_BUCKET",
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	// durations below are in seconds
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("CACHE_USER_TTL", 3600)
	viper.SetDefault("CACHE_IMAGE_TTL", 3600)
	viper.SetDefault("IMAGE_URL_EXPIRY", 7200)
	viper.SetDefault("IMAGES_PAGE_SIZE", 24)

	s := &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		PublicBaseURL:  viper.GetString("PUBLIC_BASE_URL"),
		ImagesBucket:   viper.GetString("IMAGES_BUCKET"),
		AvatarsBucket:  viper.GetString("AVATARS_BUCKET"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		CacheUserTTL:   time.Duration(viper.GetInt("CACHE_USER_TTL")) * time.Second,
		CacheImageTTL:  time.Duration(viper.GetInt("CACHE_IMAGE_TTL")) * time.Second,
		ImageURLExpiry: time.Duration(viper.GetInt("IMAGE_URL_EXPIRY")) * time.Second,
		ImagesPageSize: viper.GetInt("IMAGES_PAGE_SIZE"),
	}
	if s.AvatarsBucket == "" {
		s.AvatarsBucket = s.ImagesBucket
	}

	if s.CacheImageTTL <= 0 {
		return nil, fmt.Errorf("CACHE_IMAGE_TTL must be positive")
	}
	if s.ImageURLExpiry <= s.CacheImageTTL {
		return nil, fmt.Errorf("IMAGE_URL_EXPIRY (%s) must exceed CACHE_IMAGE_TTL (%s)", s.ImageURLExpiry, s.CacheImageTTL)
	}
	if s.ImagesPageSize <= 0 {
		return nil, fmt.Errorf("IMAGES_PAGE_SIZE must be positive")
	}

	return s, nil
}
