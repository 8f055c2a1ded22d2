package repository

import "errors"

// Sentinel kinds for aggregation store errors.
var (
	ErrClosed          = errors.New("aggregation store closed")
	ErrInvalidAptitude = errors.New("observation has no valid aptitude")
)
