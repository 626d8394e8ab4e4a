package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Image struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Bucket    string    `json:"bucket"`
	ObjectKey string    `json:"object_key"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Thumbhash *string   `json:"thumbhash"`
	Variants  Variants  `json:"variants"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ObjectKeys returns the key of the original file followed by every variant key.
func (i *Image) ObjectKeys() []string {
	keys := make([]string, 0, len(i.Variants)+1)
	keys = append(keys, i.ObjectKey)
	for _, v := range i.Variants {
		keys = append(keys, v.ObjectKey)
	}
	return keys
}

type Variant struct {
	ObjectKey string `json:"object_key"`
	SizeBytes int64  `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type Variants []Variant

func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal Variants: %w", err)
	}
	return b, nil
}

func (v *Variants) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("Variants.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal Variants: %w", err)
	}
	return nil
}
