package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached    = errors.New("store is detached")
	ErrAlreadyAttached  = errors.New("store is already attached")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrTableNotFound    = errors.New("table not found")
)
