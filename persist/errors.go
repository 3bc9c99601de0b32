package persist

import "errors"

var (
	// ErrDecode indicates a structurally malformed document. The wrapped
	// message carries the path of the offending field.
	ErrDecode = errors.New("persist: malformed document")
	// ErrUnknownName indicates a document referencing a class, attribute,
	// or action name not present in the decoding registry. The wrapped
	// message carries the path of the offending field.
	ErrUnknownName = errors.New("persist: name not in registry")
	// ErrWrongLearner indicates a learner document whose name field is not
	// "qora".
	ErrWrongLearner = errors.New("persist: not a qora learner document")
)
