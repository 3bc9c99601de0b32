// Package condition implements Predicate, RelationGroup, and Condition:
// the bit-packed logical conditions a predictor candidate scores itself
// on.
//
// # Bit packing
//
// A RelationGroup holds n canonically sorted Predicates. Evaluating a
// group against one target (and, for a relational group, one "other"
// object) yields an n-bit "single" reading: bit i is 1 iff predicate i
// holds. A relational group (OtherClassID != NoOtherClass) then unions the
// singleton bitmask of every other object of that class into a
// (2^n)-bit "all" reading — the set of single-readings that occurred across
// every other object present. A non-relational group ("none") has no other
// object to range over, so its "all" reading degenerates to a single set
// bit at the position given by its one-and-only single reading.
//
// A Condition mixes several RelationGroups (at most one of them the "none"
// group) by mixed-radix combination: the final evaluation is a single
// integer in [0, StateSize), built by accumulating each group's "all"
// reading times a running multiplier equal to the product of the
// CompleteStateSize of every group processed so far. This is exactly the
// input bucket a stats.FrequencyTable observes against.
//
// All three types are immutable value types constructed once and never
// mutated in place, canonicalized (sorted, deduplicated) at construction so
// that Key/CompareTo/Equal agree with Go map/set semantics despite Go
// lacking operator overloading for std::set<Predicate>-style containers.
package condition
