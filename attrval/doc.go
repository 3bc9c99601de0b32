// Package attrval implements AttributeValue: a fixed-length vector of signed
// 32-bit integers with value semantics, used throughout QORA as the reading
// of a single object attribute (and, as a delta, as the Effect of a
// transition).
//
// # What
//
//   - Value is an immutable-by-convention vector: every arithmetic operator
//     (Add, Sub, Scale, Set) returns a new Value rather than mutating in
//     place; there are no in-place variants.
//   - Equality is elementwise; the total order is first by length (width),
//     then lexicographic over components. Value is slice-backed and so is
//     not a Go map key itself; Key() gives the string identity under which
//     it keys dist.Distribution[Value] for Effect distributions
//     (stats.FrequencyTable's input/output buckets are plain ints).
//   - length() is the L1 (Manhattan) norm, used pervasively as an error
//     metric between states and objects.
//
// # Why
//
//   - 32-bit width: deltas must never wrap, and every domain in scope
//     (grid positions, binary switches, small counters) fits comfortably
//     in int32.
//
// # Errors
//
//   - Get/Set out of [0, width) panics: this is a programming error, not a
//     recoverable condition — callers always index with an attribute id
//     that the type registry already validated.
//   - Binary operators (Add, Sub) on mismatched widths panic for the same
//     reason.
package attrval
