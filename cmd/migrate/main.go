package main

import (
	"context"
	"os"
	"strings"

	"github.com/fhuszti/katasu-ms-go/internal/config"
	"github.com/fhuszti/katasu-ms-go/internal/db"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database, err := db.New(ctx, db.MariaDbConfig{
		DSN:             withMultiStatements(cfg.MariaDBDSN),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

// withMultiStatements enables multi-statement scripts on the DSN.
func withMultiStatements(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}
