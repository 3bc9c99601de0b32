// Package dist implements ProbabilityDistribution[T]: a sparse, weighted
// collection of values of type T, used throughout QORA for representing
// uncertainty over effects, objects, and states.
//
// Go has no operator overloading and T may not be a valid map key (wstate's
// Object is backed by a map and so is not comparable), so Distribution keys
// its internal bucket map by a caller-supplied string rather than by T
// itself: T must implement Comparable[T], which requires a Key() string
// (identity, for bucketing) and a CompareTo(other T) int (total order, for
// Max's tie-breaking). attrval.Value and wstate.Object both implement it.
//
// Distribution is not safe for concurrent use without external
// synchronization — nothing in QORA mutates one from more than one
// goroutine at a time; see qora's concurrency note.
package dist
