package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"testing"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/fhuszti/katasu-ms-go/internal/model"
)

// SeedUser inserts a user and returns its ID.
func SeedUser(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := uuid.NewString()
	if _, err := db.Exec("INSERT INTO users (id, name, bio) VALUES (?, ?, '')", id, name); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

// SeedTag inserts a tag of userID and returns its ID.
func SeedTag(t *testing.T, db *sql.DB, userID, name string) string {
	t.Helper()
	id := uuid.NewString()
	if _, err := db.Exec("INSERT INTO tags (id, user_id, name) VALUES (?, ?, ?)", id, userID, name); err != nil {
		t.Fatalf("insert tag: %v", err)
	}
	return id
}

// SeedImage inserts img and links it to tagIDs. Empty IDs are generated.
func SeedImage(t *testing.T, db *sql.DB, img *model.Image, tagIDs ...string) {
	t.Helper()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	_, err := db.Exec(
		`INSERT INTO images (id, user_id, title, bucket, object_key, width, height, thumbhash, variants)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		img.ID, img.UserID, img.Title, img.Bucket, img.ObjectKey, img.Width, img.Height, img.Thumbhash, img.Variants,
	)
	if err != nil {
		t.Fatalf("insert image: %v", err)
	}
	for _, tagID := range tagIDs {
		if _, err := db.Exec("INSERT INTO image_tags (image_id, tag_id) VALUES (?, ?)", img.ID, tagID); err != nil {
			t.Fatalf("link image to tag: %v", err)
		}
	}
}

// UploadWebP stores a plain WebP image of the given size under key.
func UploadWebP(t *testing.T, client *minio.Client, bucket, key string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: 80}); err != nil {
		t.Fatalf("encode webp: %v", err)
	}
	_, err := client.PutObject(context.Background(), bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "image/webp"})
	if err != nil {
		t.Fatalf("upload %s: %v", key, err)
	}
}
