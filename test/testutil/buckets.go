package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

type TestBuckets struct {
	Names   []string
	Cleanup func() error
}

// SetupTestBuckets (re)creates the given buckets empty.
func SetupTestBuckets(client *minio.Client, buckets ...string) (*TestBuckets, error) {
	ctx := context.Background()

	for _, b := range buckets {
		if err := emptyBucket(ctx, client, b); err != nil {
			return nil, err
		}
		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			// if it already exists, skip; otherwise fail
			exists, err2 := client.BucketExists(ctx, b)
			if err2 != nil || !exists {
				return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
			}
		}
	}

	cleanup := func() error {
		for _, b := range buckets {
			if err := emptyBucket(ctx, client, b); err != nil {
				return err
			}
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{Names: buckets, Cleanup: cleanup}, nil
}

func emptyBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("could not check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil
	}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
	}
	return nil
}
