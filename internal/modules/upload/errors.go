package upload

import "errors"

var (
	ErrInvalidImage     = errors.New("image payload is not a valid data URI")
	ErrImageTooLarge    = errors.New("image exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("image type is not allowed")
)
