package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/katasu-ms-go/internal/logger"
)

// RedisContainerInfo backs both the cache and the purge queue of a test run.
type RedisContainerInfo struct {
	Addr    string
	Cleanup func()

	// Client inspects cache keys and tag sets directly.
	Client *redis.Client
}

// StartRedisContainer runs a throwaway Redis without persistence.
func StartRedisContainer() (*RedisContainerInfo, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
		Cmd:        []string{"redis-server", "--save", "", "--appendonly", "no"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start redis container: %w", err)
	}

	info, err := ConnectRedis(fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp")), pool.Retry)
	if err != nil {
		_ = pool.Purge(resource)
		return nil, err
	}

	closeClient := info.Cleanup
	info.Cleanup = func() {
		closeClient()
		if err := pool.Purge(resource); err != nil {
			logger.Warnf(context.Background(), "could not purge redis container: %s", err)
		}
	}
	return info, nil
}

// ConnectRedis waits until the server at addr answers PING, using retry to
// pace the attempts.
func ConnectRedis(addr string, retry func(func() error) error) (*RedisContainerInfo, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis at %s did not become ready: %w", addr, err)
	}

	return &RedisContainerInfo{
		Addr:    addr,
		Client:  rdb,
		Cleanup: func() { _ = rdb.Close() },
	}, nil
}
