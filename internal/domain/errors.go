package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("duplicate field value entered")
	ErrUnauthorized       = errors.New("not authorized to access this route")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPayloadTooLarge    = errors.New("file too large")
	ErrUnsupportedMedia   = errors.New("please upload an image file")
)
