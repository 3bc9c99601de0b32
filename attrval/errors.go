package attrval

import "errors"

var (
	// ErrWidthMismatch indicates a binary operation between Values of
	// different widths.
	ErrWidthMismatch = errors.New("attrval: width mismatch")
	// ErrIndexOutOfRange indicates Get/Set with an index outside [0, width).
	ErrIndexOutOfRange = errors.New("attrval: index out of range")
)
