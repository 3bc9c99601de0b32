// Package persist provides the round-trippable JSON encoding of the type
// registry, world states, and trained QORA learners.
//
// Registry-dependent values — object classes, attribute types, actions —
// are always encoded by name, never by numeric id, so a document decodes
// correctly into any registry that registers the same names, regardless of
// the order the ids were assigned in. Frequency-table success intervals
// are not stored: they are recomputed from the decoded counts and the
// stored alpha, which reproduces them exactly.
package persist
