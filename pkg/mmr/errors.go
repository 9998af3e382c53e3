package mmr

import "errors"

var (
	// ErrInvalidInput is returned when a rating vector or finish order can
	// not be rated, e.g. mismatched lengths or non-finite ratings.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidParameter is returned when engine configuration is out of
	// its domain, e.g. a score function base below 1.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvariantViolation means a score vector did not sum to 1. This is
	// a bug in a custom score function or numeric drift, not a user error.
	ErrInvariantViolation = errors.New("score invariant violated")
)
