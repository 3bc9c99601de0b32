package wstate

import "errors"

var (
	// ErrStructuralMismatch indicates Diff was called on two States whose
	// object-id sets (or an object's attribute-id sets) don't match.
	ErrStructuralMismatch = errors.New("wstate: structural mismatch")
	// ErrDuplicateObjectID indicates AddObject with an object id already
	// present in the State.
	ErrDuplicateObjectID = errors.New("wstate: duplicate object id")
	// ErrUnknownObjectID indicates a lookup or removal by an object id not
	// present in the State.
	ErrUnknownObjectID = errors.New("wstate: unknown object id")
)
