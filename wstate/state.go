package wstate

import (
	"sort"

	"github.com/GabrielRStella/QORA/attrval"
)

// State is a snapshot of every object present in the world at one instant.
type State struct {
	NextObjectID int
	Objects      map[int]Object
}

// NewState returns an empty State ready to receive objects.
func NewState() State {
	return State{Objects: make(map[int]Object)}
}

func (s *State) ensure() {
	if s.Objects == nil {
		s.Objects = make(map[int]Object)
	}
}

// AddObject inserts obj keyed by obj.ObjectID. Returns ErrDuplicateObjectID
// if that id is already present. NextObjectID is advanced past obj.ObjectID
// if necessary, so a subsequently-created fresh id never collides.
func (s *State) AddObject(obj Object) error {
	s.ensure()
	if _, exists := s.Objects[obj.ObjectID]; exists {
		return ErrDuplicateObjectID
	}
	s.Objects[obj.ObjectID] = obj
	if obj.ObjectID >= s.NextObjectID {
		s.NextObjectID = obj.ObjectID + 1
	}
	return nil
}

// RemoveObject deletes the object with the given id. Returns
// ErrUnknownObjectID if absent.
func (s *State) RemoveObject(id int) error {
	s.ensure()
	if _, exists := s.Objects[id]; !exists {
		return ErrUnknownObjectID
	}
	delete(s.Objects, id)
	return nil
}

// GetObject returns the object with the given id, and whether it is
// present.
func (s State) GetObject(id int) (Object, bool) {
	o, ok := s.Objects[id]
	return o, ok
}

// ObjectsOfClass returns every object of the given class, in ascending
// object-id order. It is a snapshot, not a live view — callers that mutate
// s afterward must call it again.
func (s State) ObjectsOfClass(classID int) []Object {
	return filterSorted(s.Objects, func(o Object) bool { return o.ClassID == classID })
}

// ByClass groups every object in s by class id, in ascending object-id
// order within each group. Every class id present in s appears as a key.
func (s State) ByClass() map[int][]Object {
	out := make(map[int][]Object)
	for _, o := range s.sortedObjects() {
		out[o.ClassID] = append(out[o.ClassID], o)
	}
	return out
}

func filterSorted(objects map[int]Object, keep func(Object) bool) []Object {
	ids := make([]int, 0, len(objects))
	for id, o := range objects {
		if keep(o) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]Object, len(ids))
	for i, id := range ids {
		out[i] = objects[id]
	}
	return out
}

func (s State) sortedObjects() []Object {
	return filterSorted(s.Objects, func(Object) bool { return true })
}

func (s State) sortedObjectIDs() []int {
	ids := make([]int, 0, len(s.Objects))
	for id := range s.Objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Diff computes the elementwise attribute delta between s and prev: for
// each object id, the per-attribute difference s[attr] - prev[attr]. Both
// states must have identical object-id sets, and for every shared object,
// identical attribute-id sets; otherwise Diff returns ErrStructuralMismatch.
func (s State) Diff(prev State) (State, error) {
	if len(s.Objects) != len(prev.Objects) {
		return State{}, ErrStructuralMismatch
	}
	out := NewState()
	for id, cur := range s.Objects {
		prevObj, ok := prev.Objects[id]
		if !ok {
			return State{}, ErrStructuralMismatch
		}
		if len(cur.Attributes) != len(prevObj.Attributes) {
			return State{}, ErrStructuralMismatch
		}
		deltaAttrs := make(map[int]attrval.Value, len(cur.Attributes))
		for attrID, v := range cur.Attributes {
			prevV, ok := prevObj.Attributes[attrID]
			if !ok {
				return State{}, ErrStructuralMismatch
			}
			deltaAttrs[attrID] = v.Sub(prevV)
		}
		out.Objects[id] = Object{ClassID: cur.ClassID, ObjectID: id, Attributes: deltaAttrs}
	}
	out.NextObjectID = s.NextObjectID
	return out, nil
}

// Apply adds delta's per-object, per-attribute values onto s, returning the
// resulting State. Objects present in delta but not s, or attributes
// present in delta but not the matching object in s, are ignored: Apply is
// the inverse of Diff only for structurally matching pairs.
func (s State) Apply(delta State) State {
	out := NewState()
	out.NextObjectID = s.NextObjectID
	for id, obj := range s.Objects {
		deltaObj, ok := delta.Objects[id]
		if !ok {
			out.Objects[id] = obj
			continue
		}
		merged := obj
		for attrID, dv := range deltaObj.Attributes {
			if v, ok := obj.Attributes[attrID]; ok {
				merged = merged.With(attrID, v.Add(dv))
			}
		}
		out.Objects[id] = merged
	}
	return out
}

// Length is the sum of the Manhattan length of every attribute of every
// object in s.
func (s State) Length() int {
	total := 0
	for _, o := range s.Objects {
		for _, v := range o.Attributes {
			total += v.Length()
		}
	}
	return total
}

// Error is the Manhattan distance between s and other: Diff(other).Length().
func (s State) Error(other State) (int, error) {
	d, err := s.Diff(other)
	if err != nil {
		return 0, err
	}
	return d.Length(), nil
}

// Equal reports structural equality: same object ids, each with an equal
// Object.
func (s State) Equal(other State) bool {
	if len(s.Objects) != len(other.Objects) {
		return false
	}
	for id, o := range s.Objects {
		oo, ok := other.Objects[id]
		if !ok || !o.Equal(oo) {
			return false
		}
	}
	return true
}

// CompareTo implements a total order over States derived from comparing
// their objects maps in ascending object-id order.
func (s State) CompareTo(other State) int {
	ids := s.sortedObjectIDs()
	otherIDs := other.sortedObjectIDs()
	for i := 0; i < len(ids) && i < len(otherIDs); i++ {
		if ids[i] != otherIDs[i] {
			return ids[i] - otherIDs[i]
		}
		if c := s.Objects[ids[i]].CompareTo(other.Objects[otherIDs[i]]); c != 0 {
			return c
		}
	}
	return len(ids) - len(otherIDs)
}
