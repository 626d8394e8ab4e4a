package db

import "time"

type MariaDbConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// PingTimeout bounds the connectivity check done by New. Zero means 5s.
	PingTimeout time.Duration
}
