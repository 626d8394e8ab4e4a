package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultPingTimeout = 5 * time.Second

// Database holds the MariaDB connection pool shared by the repositories.
type Database struct {
	*sql.DB
}

// New opens and configures a MariaDB connection pool, then verifies it.
// It returns an error if opening or pinging the database fails.
func New(ctx context.Context, cfg MariaDbConfig) (*Database, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mariadb: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if cErr := db.Close(); cErr != nil {
			return nil, cErr
		}
		return nil, fmt.Errorf("ping mariadb: %w", err)
	}
	return &Database{db}, nil
}
