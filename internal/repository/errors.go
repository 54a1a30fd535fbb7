package repository

import "errors"

// ErrNotFound is returned when a requested document does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")
