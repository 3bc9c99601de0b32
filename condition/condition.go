package condition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/wstate"
)

// Condition is a canonically sorted set of RelationGroups, at most one of
// which has OtherClassID == NoOtherClass — a structural guarantee that
// NewCondition maintains by merging any groups that share an OtherClassID.
type Condition struct {
	Groups []RelationGroup
}

// NewCondition canonicalizes groups: groups sharing an OtherClassID are
// merged (their predicate sets unioned), and the result is sorted by
// OtherClassID.
func NewCondition(groups ...RelationGroup) Condition {
	byOther := make(map[int][]Predicate)
	order := make([]int, 0, len(groups))
	for _, g := range groups {
		if _, seen := byOther[g.OtherClassID]; !seen {
			order = append(order, g.OtherClassID)
		}
		byOther[g.OtherClassID] = append(byOther[g.OtherClassID], g.Predicates...)
	}
	sort.Ints(order)
	merged := make([]RelationGroup, 0, len(order))
	for _, other := range order {
		merged = append(merged, NewRelationGroup(other, byOther[other]...))
	}
	return Condition{Groups: merged}
}

// StateSize returns the product of every group's CompleteStateSize: the
// number of distinct values Evaluate can return.
func (c Condition) StateSize() uint64 {
	size := uint64(1)
	for _, g := range c.Groups {
		size *= g.CompleteStateSize()
	}
	return size
}

// Evaluate returns c's mixed-radix combination of every group's EvaluateAll
// reading against target and objectsByClass.
func (c Condition) Evaluate(target wstate.Object, objectsByClass map[int][]wstate.Object) uint64 {
	var value, multiplier uint64 = 0, 1
	for _, g := range c.Groups {
		value += g.EvaluateAll(target, objectsByClass) * multiplier
		multiplier *= g.CompleteStateSize()
	}
	return value
}

// Add returns the union of c and other: every group merged by
// OtherClassID, predicate sets unioned. Used to seed compound hypotheses
// from singleton conditions.
func (c Condition) Add(other Condition) Condition {
	return NewCondition(append(append([]RelationGroup{}, c.Groups...), other.Groups...)...)
}

// Equal reports structural equality.
func (c Condition) Equal(b Condition) bool {
	return c.CompareTo(b) == 0
}

// CompareTo implements a total order: the canonical group list compared
// elementwise.
func (c Condition) CompareTo(b Condition) int {
	for i := 0; i < len(c.Groups) && i < len(b.Groups); i++ {
		if cmp := c.Groups[i].CompareTo(b.Groups[i]); cmp != 0 {
			return cmp
		}
	}
	return len(c.Groups) - len(b.Groups)
}

// Key returns a canonical string identity, used to dedup Conditions in a
// StochasticEffectPredictor's observed set (Go has no comparable-struct
// set like std::set<Condition> since Condition is slice-backed).
func (c Condition) Key() string {
	var b strings.Builder
	for i, g := range c.Groups {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%d:", g.OtherClassID)
		for j, p := range g.Predicates {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d/%t/%t/%s", p.AttributeID, p.IsRelative, p.IsTarget, p.Value.Key())
		}
	}
	return b.String()
}

// String renders c for diagnostic output, given a registry to resolve
// names and the target object class.
func (c Condition) String(reg *registry.Registry, targetClassID int) string {
	name := fmt.Sprintf("class%d", targetClassID)
	if cls, err := reg.ObjectClass(targetClassID); err == nil {
		name = cls.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s x: ", name)
	for i, g := range c.Groups {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.String(reg))
	}
	return b.String()
}

// CaseInfo decodes inputCase (a value produced by Evaluate) back into each
// group's own CaseInfo reading, in group order.
func (c Condition) CaseInfo(inputCase uint64) string {
	values := make([]uint64, len(c.Groups))
	for i, g := range c.Groups {
		multiplier := g.CompleteStateSize()
		values[i] = inputCase % multiplier
		inputCase /= multiplier
	}
	var b strings.Builder
	for i, g := range c.Groups {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.CaseInfo(values[i]))
	}
	return b.String()
}
