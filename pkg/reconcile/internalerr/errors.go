package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Group and record outcomes. None of these abort a run.
var (
	ErrMissingDocument  = errors.New("source document missing")
	ErrUnsegmentable    = errors.New("fewer than two sections")
	ErrNoPositiveMatch  = errors.New("no positive match")
	ErrLocationMismatch = errors.New("location mismatch")
	ErrUpdate           = errors.New("update failed")
)
