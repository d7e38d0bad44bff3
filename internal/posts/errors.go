package posts

import "errors"

var (
	// ErrValidation is returned when a create payload lacks a title or body.
	ErrValidation = errors.New("posts: title and body are required")
	// ErrInternal wraps any connection or store failure.
	ErrInternal = errors.New("posts: internal error")
)
