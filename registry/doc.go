// Package registry implements the type registry: the catalogue of
// attribute types, object classes, and actions that every other QORA
// package indexes into by id.
//
// A Registry assigns dense, monotonically increasing integer ids as names
// are registered; ids are never reused and never reassigned, so an id taken
// from one Object/State remains valid for the lifetime of the Registry that
// produced it. Persistence (package persist) re-derives equivalent ids in a
// freshly constructed Registry by re-registering the same names in the same
// document order — see persist's doc comment for why names, not ids, are
// the wire identity.
package registry
