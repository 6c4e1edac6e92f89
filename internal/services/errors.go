package services

import "errors"

// Funding service errors
var (
	ErrDatasetNotLoaded = errors.New("funding dataset not loaded")
	ErrStoreUnavailable = errors.New("funding query store unavailable")
)
