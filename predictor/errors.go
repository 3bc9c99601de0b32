package predictor

import "errors"

// ErrUnknownTargetClass is returned by Observe when the target object's
// class is not registered.
var ErrUnknownTargetClass = errors.New("predictor: unknown target object class")
