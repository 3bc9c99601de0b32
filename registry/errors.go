package registry

import "errors"

var (
	// ErrDuplicateName indicates an attribute type, object class, or action
	// name that has already been registered.
	ErrDuplicateName = errors.New("registry: duplicate name")
	// ErrUnknownID indicates a lookup by an id the registry never assigned.
	ErrUnknownID = errors.New("registry: unknown id")
	// ErrUnknownName indicates a lookup by a name the registry never
	// registered.
	ErrUnknownName = errors.New("registry: unknown name")
	// ErrAttributeAlreadyInClass indicates AddAttributeToClass called
	// twice for the same (class, attribute) pair.
	ErrAttributeAlreadyInClass = errors.New("registry: attribute already in class")
	// ErrStandardActionsAlreadyAdded indicates AddStandardActions was
	// called more than once, or after another action was already added.
	ErrStandardActionsAlreadyAdded = errors.New("registry: standard actions require an empty action table")
)
