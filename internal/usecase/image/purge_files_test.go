package image

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/mock"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

func TestPurgeFiles(t *testing.T) {
	strg := &mock.Storage{}
	svc := NewFilePurger(strg)

	keys := []string{"a", "b", "c", "d", "e", "f"}
	if err := svc.PurgeFiles(context.Background(), port.PurgeFilesInput{Bucket: "images", ObjectKeys: keys}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := append([]string(nil), strg.Removed...)
	sort.Strings(got)
	if len(got) != len(keys) {
		t.Errorf("removed = %v; want %v", got, keys)
	}
}

func TestPurgeFiles_Error(t *testing.T) {
	removeErr := errors.New("s3 down")
	strg := &mock.Storage{RemoveErrs: map[string]error{"b": removeErr}}
	svc := NewFilePurger(strg)

	err := svc.PurgeFiles(context.Background(), port.PurgeFilesInput{Bucket: "images", ObjectKeys: []string{"a", "b"}})
	if !errors.Is(err, removeErr) {
		t.Fatalf("err = %v; want %v", err, removeErr)
	}
}

func TestGenerateDownloadLink(t *testing.T) {
	repo := &mock.MockImageRepo{ImageRecord: taggedImage()}
	strg := &mock.Storage{}
	svc := NewDownloadLinkGenerator(repo, strg, 5*time.Minute)

	url, err := svc.GenerateDownloadLink(context.Background(), "img1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/download/user1/img1.webp" || strg.TTL != 5*time.Minute {
		t.Errorf("url = %q, expiry = %v", url, strg.TTL)
	}
}

func TestGenerateDownloadLink_Errors(t *testing.T) {
	svc := NewDownloadLinkGenerator(&mock.MockImageRepo{GetErr: sql.ErrNoRows}, &mock.Storage{}, time.Minute)
	if _, err := svc.GenerateDownloadLink(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}

	signErr := errors.New("sign fail")
	svc = NewDownloadLinkGenerator(&mock.MockImageRepo{ImageRecord: taggedImage()}, &mock.Storage{GenerateDownloadLinkErr: signErr}, time.Minute)
	if _, err := svc.GenerateDownloadLink(context.Background(), "img1"); !errors.Is(err, signErr) {
		t.Errorf("err = %v; want %v", err, signErr)
	}
}
