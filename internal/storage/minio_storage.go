package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage talks to any S3-compatible object store (MinIO locally, R2 in production).
type MinioStorage struct {
	client minioClient
	useSSL bool
	// publicBase, when set, replaces the endpoint in public URLs (CDN domain)
	publicBase string
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewStorage(endpoint, accessKey, secretKey string, useSSL bool, publicBase string) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, useSSL: useSSL, publicBase: strings.TrimSuffix(publicBase, "/")}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ok, err := s.client.BucketExists(context.Background(), bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	log.Printf("generating a presigned download link for file %q in bucket %q...", fileKey, bucket)

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(fileKey)))

	presignedURL, err := s.client.PresignedGetObject(ctx, bucket, fileKey, expiry, params)
	if err != nil {
		return "", mapMinioErr(err)
	}

	return presignedURL.String(), nil
}

func (s *MinioStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	log.Printf("checking if file %q exists in bucket %q...", fileKey, bucket)

	_, err := s.client.StatObject(ctx, bucket, fileKey, minio.StatObjectOptions{})
	err = mapMinioErr(err)
	if errors.Is(err, ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFile deletes an object. Removing a missing object succeeds.
func (s *MinioStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	log.Printf("removing file %q from bucket %q...", fileKey, bucket)

	err := mapMinioErr(s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{}))
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	return err
}

// PublicURL builds the unsigned URL of an object. With publicBase set, the
// base replaces the endpoint and the path still starts with the bucket.
func (s *MinioStorage) PublicURL(bucket, fileKey string) string {
	if s.publicBase != "" {
		return s.publicBase + path.Join("/", bucket, fileKey)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   s.client.EndpointURL().Host,
		Path:   path.Join("/", bucket, fileKey),
	}
	return u.String()
}
