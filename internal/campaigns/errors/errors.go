package errors

import "errors"

var (
	ErrNotFound  = errors.New("campaign link not found")
	ErrInvalidID = errors.New("invalid campaign link id")
)
