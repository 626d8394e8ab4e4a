package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/port"
)

type downloadLinkSrv struct {
	repo   port.ImageRepository
	strg   port.Storage
	expiry time.Duration
}

func NewDownloadLinkGenerator(repo port.ImageRepository, strg port.Storage, expiry time.Duration) port.DownloadLinkGenerator {
	return &downloadLinkSrv{repo: repo, strg: strg, expiry: expiry}
}

// GenerateDownloadLink signs a fresh link to the original file. It bypasses the cache.
func (s *downloadLinkSrv) GenerateDownloadLink(ctx context.Context, id string) (string, error) {
	img, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load image #%s: %w", id, err)
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, img.Bucket, img.ObjectKey, s.expiry)
	if err != nil {
		return "", fmt.Errorf("sign download url of image #%s: %w", id, err)
	}
	return url, nil
}
