package statedist

import "errors"

// ErrUnknownObjectID is returned when an operation references an object id
// that has not been added to the StateDistribution via AddNewObject or
// AddObjectDistribution.
var ErrUnknownObjectID = errors.New("statedist: unknown object id")

// ErrEmptyObjectDistribution is returned when AddObjectDistribution is given a
// distribution with no support: there would be no object id to key it by.
var ErrEmptyObjectDistribution = errors.New("statedist: object distribution has no support")
