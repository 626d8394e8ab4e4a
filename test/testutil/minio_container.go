package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/storage"
)

type MinIOContainerInfo struct {
	Endpoint string
	Strg     *storage.MinioStorage
	Cleanup  func()

	// Client seeds and inspects objects directly.
	Client *minio.Client
}

const (
	minioRootUser     = "minioadmin"
	minioRootPassword = "minioadmin"
)

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	const (
		image        = "minio/minio"
		tag          = "latest"
		internalPort = "9000/tcp"
	)

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Env: []string{
			fmt.Sprintf("MINIO_ROOT_USER=%s", minioRootUser),
			fmt.Sprintf("MINIO_ROOT_PASSWORD=%s", minioRootPassword),
		},
		Cmd: []string{"server", "/data"},
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start minio container: %w", err)
	}

	info, err := ConnectMinIO(fmt.Sprintf("localhost:%s", resource.GetPort(internalPort)), minioRootUser, minioRootPassword, false, pool.Retry)
	if err != nil {
		_ = pool.Purge(resource)
		return nil, err
	}
	info.Cleanup = func() {
		if err := pool.Purge(resource); err != nil {
			logger.Warnf(context.Background(), "could not purge minio container: %s", err)
		}
	}
	return info, nil
}

// ConnectMinIO builds both clients for an already running MinIO, using retry
// until it answers.
func ConnectMinIO(endpoint, accessKey, secretKey string, useSSL bool, retry func(func() error) error) (*MinIOContainerInfo, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}
	if err := retry(func() error {
		// ListBuckets is a light operation to check health
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := client.ListBuckets(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("minio did not become ready: %w", err)
	}

	strg, err := storage.NewStorage(endpoint, accessKey, secretKey, useSSL, "")
	if err != nil {
		return nil, fmt.Errorf("could not create storage: %w", err)
	}
	return &MinIOContainerInfo{Endpoint: endpoint, Client: client, Strg: strg, Cleanup: func() {}}, nil
}
