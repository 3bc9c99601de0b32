package wstate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GabrielRStella/QORA/attrval"
)

// Object is a typed, attribute-valued entity: a class id, an object id
// unique within its owning State, and a map from attribute id to reading.
type Object struct {
	ClassID    int
	ObjectID   int
	Attributes map[int]attrval.Value
}

// New constructs an Object from an explicit attribute map. The map is
// copied so the caller's map and the Object's internal map never alias.
func New(classID, objectID int, attrs map[int]attrval.Value) Object {
	copied := make(map[int]attrval.Value, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Object{ClassID: classID, ObjectID: objectID, Attributes: copied}
}

// sortedAttributeIDs returns the attribute ids present in o, in ascending
// order, so map iteration order never leaks into comparisons or encodings.
func (o Object) sortedAttributeIDs() []int {
	ids := make([]int, 0, len(o.Attributes))
	for id := range o.Attributes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Get returns the reading for attrID and whether it was present.
func (o Object) Get(attrID int) (attrval.Value, bool) {
	v, ok := o.Attributes[attrID]
	return v, ok
}

// With returns a copy of o with attrID's reading replaced by value.
func (o Object) With(attrID int, value attrval.Value) Object {
	copied := make(map[int]attrval.Value, len(o.Attributes)+1)
	for k, v := range o.Attributes {
		copied[k] = v
	}
	copied[attrID] = value
	return Object{ClassID: o.ClassID, ObjectID: o.ObjectID, Attributes: copied}
}

// Distance is the ground metric used by statedist's earth-mover
// approximation: the sum, over attributes present on the receiver, of the
// Manhattan length of the componentwise difference against the same
// attribute on other. Attributes the receiver has but other lacks are
// skipped rather than erroring — the asymmetric, partial contract lets
// Distance compare objects of different classes that happen to share some
// attribute ids.
func (o Object) Distance(other Object) int {
	total := 0
	for _, attrID := range o.sortedAttributeIDs() {
		ov, ok := other.Attributes[attrID]
		if !ok {
			continue
		}
		total += o.Attributes[attrID].Sub(ov).Length()
	}
	return total
}

// Equal reports structural equality over class id, object id, and every
// attribute reading.
func (o Object) Equal(other Object) bool {
	if o.ClassID != other.ClassID || o.ObjectID != other.ObjectID {
		return false
	}
	if len(o.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range o.Attributes {
		ov, ok := other.Attributes[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// CompareTo implements a total order: class id, then object id, then
// attribute map order (attribute id ascending, then each value's own
// order).
func (o Object) CompareTo(other Object) int {
	if o.ClassID != other.ClassID {
		return o.ClassID - other.ClassID
	}
	if o.ObjectID != other.ObjectID {
		return o.ObjectID - other.ObjectID
	}
	ids := o.sortedAttributeIDs()
	otherIDs := other.sortedAttributeIDs()
	for i := 0; i < len(ids) && i < len(otherIDs); i++ {
		if ids[i] != otherIDs[i] {
			return ids[i] - otherIDs[i]
		}
		if c := o.Attributes[ids[i]].CompareTo(other.Attributes[otherIDs[i]]); c != 0 {
			return c
		}
	}
	return len(ids) - len(otherIDs)
}

// Key returns a canonical string identity, used to bucket Object values in
// a dist.Distribution[Object].
func (o Object) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:", o.ClassID, o.ObjectID)
	for i, id := range o.sortedAttributeIDs() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(id))
		b.WriteByte('=')
		b.WriteString(o.Attributes[id].Key())
	}
	return b.String()
}

// String renders o for diagnostic output.
func (o Object) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Object{class=%d, id=%d, attrs={", o.ClassID, o.ObjectID)
	for i, id := range o.sortedAttributeIDs() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %s", id, o.Attributes[id])
	}
	b.WriteString("}}")
	return b.String()
}
