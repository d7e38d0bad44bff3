package store

import "errors"

var (
	// ErrConfiguration means the store address is missing or unusable.
	ErrConfiguration = errors.New("store: configuration error")
	// ErrConnection means the store could not be reached or authenticated against.
	ErrConnection = errors.New("store: connection error")
)
