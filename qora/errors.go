package qora

import "errors"

var (
	// ErrInvalidConfig indicates a Config whose parameters are out of
	// range (alpha outside (0, 1), negative parallelism).
	ErrInvalidConfig = errors.New("qora: invalid config")
	// ErrUnknownAction indicates an observe or predict call with an action
	// id the registry never assigned.
	ErrUnknownAction = errors.New("qora: unknown action")
	// ErrUnknownClass indicates a state containing an object whose class
	// id the registry never assigned.
	ErrUnknownClass = errors.New("qora: unknown object class")
)
