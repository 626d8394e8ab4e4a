package task

import (
	"encoding/json"
	"fmt"

	"github.com/fhuszti/katasu-ms-go/internal/validation"
	"github.com/hibiken/asynq"
)

const TypePurgeImageFiles = "image:purge_files"

// PurgeImageFilesPayload lists the stored objects of a deleted image.
type PurgeImageFilesPayload struct {
	Bucket     string   `json:"bucket" validate:"required"`
	ObjectKeys []string `json:"object_keys" validate:"min=1,dive,required"`
}

// NewPurgeImageFilesTask creates an Asynq task removing the given objects from bucket.
func NewPurgeImageFilesTask(bucket string, objectKeys []string) (*asynq.Task, error) {
	p := PurgeImageFilesPayload{Bucket: bucket, ObjectKeys: objectKeys}
	if err := validation.ValidateStruct(p); err != nil {
		return nil, fmt.Errorf("invalid purge-image-files payload: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal purge-image-files payload: %w", err)
	}
	return asynq.NewTask(TypePurgeImageFiles, data, asynq.MaxRetry(5)), nil
}

// ParsePurgeImageFilesPayload parses and validates the task payload.
func ParsePurgeImageFilesPayload(t *asynq.Task) (PurgeImageFilesPayload, error) {
	var p PurgeImageFilesPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return PurgeImageFilesPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(p); err != nil {
		return PurgeImageFilesPayload{}, fmt.Errorf("invalid payload: %w", err)
	}
	return p, nil
}
