package condition

import "errors"

// ErrUnknownAttribute indicates Evaluate referenced an attribute id not
// present on the object it was evaluated against.
var ErrUnknownAttribute = errors.New("condition: unknown attribute on object")
