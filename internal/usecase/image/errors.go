package image

import "errors"

var (
	ErrNotFound  = errors.New("image not found")
	ErrForbidden = errors.New("image belongs to another user")
)
