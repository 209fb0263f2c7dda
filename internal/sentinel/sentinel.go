package sentinel

import "errors"

// Sentinel dependency errors. Stores, caches and the ledger adapter return these
// (optionally wrapped) so services translate them into domain errors exactly once.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("unavailable")
	ErrTimeout       = errors.New("timed out")
	ErrCacheMiss     = errors.New("cache miss")
)
