// Package wstate implements Object and State: the typed,
// attribute-valued objects that make up a world snapshot, and the snapshot
// itself.
//
// Object is a value type (class id + object id + a map of attribute
// readings) and so is not itself a valid Go map key — the same problem
// attrval.Value solves for its own slice-backed data. Object implements
// dist.Comparable[Object] (Key, CompareTo) for exactly that reason: it is
// the element type of statedist's per-object-id ProbabilityDistribution.
package wstate
