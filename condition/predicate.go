package condition

import (
	"fmt"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/wstate"
)

// Predicate is a single atomic test against one attribute: either a literal
// reading of the target (or, in a relational context, the "other" object),
// or a relative test on other.Attr - target.Attr.
type Predicate struct {
	AttributeID int
	IsRelative  bool
	// IsTarget selects which object a non-relative predicate reads from:
	// true reads the target, false reads "other". Meaningless when
	// IsRelative is true.
	IsTarget bool
	Value    attrval.Value
}

func attr(target wstate.Object, attrID int) attrval.Value {
	v, ok := target.Get(attrID)
	if !ok {
		panic(fmt.Errorf("%w: attribute %d", ErrUnknownAttribute, attrID))
	}
	return v
}

// EvaluateSolo evaluates p against target alone, with no "other" object
// available. It is only ever true for a non-relative, target-reading
// predicate — any predicate that needs an "other" object reads as false.
func (p Predicate) EvaluateSolo(target wstate.Object) bool {
	return !p.IsRelative && p.IsTarget && attr(target, p.AttributeID).Equal(p.Value)
}

// EvaluatePair evaluates p against a (target, other) pair.
func (p Predicate) EvaluatePair(target, other wstate.Object) bool {
	switch {
	case p.IsRelative:
		return attr(other, p.AttributeID).Sub(attr(target, p.AttributeID)).Equal(p.Value)
	case p.IsTarget:
		return attr(target, p.AttributeID).Equal(p.Value)
	default:
		return attr(other, p.AttributeID).Equal(p.Value)
	}
}

// Equal reports structural equality.
func (p Predicate) Equal(b Predicate) bool {
	return p.AttributeID == b.AttributeID && p.IsRelative == b.IsRelative &&
		p.IsTarget == b.IsTarget && p.Value.Equal(b.Value)
}

// CompareTo implements the canonical predicate order: attribute id
// ascending, then IsRelative ascending (non-relative before relative),
// then IsTarget DESCENDING (target-reading before other-reading — the
// reverse of normal bool order; every group's bit layout depends on this
// direction, so it must never be "fixed"), then Value's order.
func (p Predicate) CompareTo(b Predicate) int {
	if p.AttributeID != b.AttributeID {
		return p.AttributeID - b.AttributeID
	}
	if p.IsRelative != b.IsRelative {
		if !p.IsRelative {
			return -1
		}
		return 1
	}
	if p.IsTarget != b.IsTarget {
		if p.IsTarget {
			return -1
		}
		return 1
	}
	return p.Value.CompareTo(b.Value)
}

// String renders p for diagnostic output, given a registry to resolve the
// attribute's name.
func (p Predicate) String(reg *registry.Registry) string {
	name := fmt.Sprintf("attr%d", p.AttributeID)
	if at, err := reg.AttributeType(p.AttributeID); err == nil {
		name = at.Name
	}
	if p.IsRelative {
		return fmt.Sprintf("y.%s - x.%s = %s", name, name, p.Value)
	}
	if p.IsTarget {
		return fmt.Sprintf("x.%s = %s", name, p.Value)
	}
	return fmt.Sprintf("y.%s = %s", name, p.Value)
}
