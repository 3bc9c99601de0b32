package dist

import "errors"

var (
	// ErrEmptyDistribution indicates Sample or Max was called on a
	// Distribution with zero total weight.
	ErrEmptyDistribution = errors.New("dist: empty distribution")
)
