package condition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/wstate"
)

// NoOtherClass marks a RelationGroup that ranges over no "other" object —
// its predicates read only the target.
const NoOtherClass = -1

// RelationGroup is a canonically sorted, deduplicated set of Predicates,
// all evaluated against one target and (unless OtherClassID is
// NoOtherClass) every object of one other class.
type RelationGroup struct {
	OtherClassID int
	Predicates   []Predicate
}

// NewRelationGroup canonicalizes predicates (sorted, deduplicated) into a
// RelationGroup over otherClassID.
func NewRelationGroup(otherClassID int, predicates ...Predicate) RelationGroup {
	sorted := make([]Predicate, len(predicates))
	copy(sorted, predicates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CompareTo(sorted[j]) < 0 })
	deduped := sorted[:0:0]
	for i, p := range sorted {
		if i == 0 || !p.Equal(sorted[i-1]) {
			deduped = append(deduped, p)
		}
	}
	return RelationGroup{OtherClassID: otherClassID, Predicates: deduped}
}

// Size returns n, the number of predicates in the group.
func (g RelationGroup) Size() int { return len(g.Predicates) }

// StateSize returns 2^n: the number of distinct single-pair readings.
func (g RelationGroup) StateSize() uint64 { return uint64(1) << uint(g.Size()) }

// CompleteStateSize returns 2^(2^n): the number of distinct "all possible
// pairs" readings.
func (g RelationGroup) CompleteStateSize() uint64 { return uint64(1) << g.StateSize() }

// EvaluateSingleSolo returns the n-bit single-pair reading of g against
// target alone (no other object).
func (g RelationGroup) EvaluateSingleSolo(target wstate.Object) uint64 {
	var value uint64
	for i, p := range g.Predicates {
		if p.EvaluateSolo(target) {
			value |= uint64(1) << uint(i)
		}
	}
	return value
}

// EvaluateSinglePair returns the n-bit single-pair reading of g against
// (target, other).
func (g RelationGroup) EvaluateSinglePair(target, other wstate.Object) uint64 {
	var value uint64
	for i, p := range g.Predicates {
		if p.EvaluatePair(target, other) {
			value |= uint64(1) << uint(i)
		}
	}
	return value
}

// EvaluateAll returns g's full (2^n)-bit reading: for NoOtherClass, a
// single set bit at the solo single-pair reading; otherwise, the union of
// the single-pair reading's bit over every object of OtherClassID present
// in objectsByClass.
func (g RelationGroup) EvaluateAll(target wstate.Object, objectsByClass map[int][]wstate.Object) uint64 {
	if g.OtherClassID == NoOtherClass {
		return uint64(1) << g.EvaluateSingleSolo(target)
	}
	var result uint64
	for _, other := range objectsByClass[g.OtherClassID] {
		result |= uint64(1) << g.EvaluateSinglePair(target, other)
	}
	return result
}

// Equal reports structural equality.
func (g RelationGroup) Equal(b RelationGroup) bool {
	return g.CompareTo(b) == 0
}

// CompareTo implements a total order: OtherClassID ascending, then the
// canonical predicate list compared lexicographically.
func (g RelationGroup) CompareTo(b RelationGroup) int {
	if g.OtherClassID != b.OtherClassID {
		return g.OtherClassID - b.OtherClassID
	}
	for i := 0; i < len(g.Predicates) && i < len(b.Predicates); i++ {
		if c := g.Predicates[i].CompareTo(b.Predicates[i]); c != 0 {
			return c
		}
	}
	return len(g.Predicates) - len(b.Predicates)
}

// String renders g for diagnostic output.
func (g RelationGroup) String(reg *registry.Registry) string {
	var b strings.Builder
	if g.OtherClassID != NoOtherClass {
		name := fmt.Sprintf("class%d", g.OtherClassID)
		if cls, err := reg.ObjectClass(g.OtherClassID); err == nil {
			name = cls.Name
		}
		fmt.Fprintf(&b, "[%s y: ", name)
	} else {
		b.WriteByte('[')
	}
	for i, p := range g.Predicates {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p.String(reg))
	}
	b.WriteByte(']')
	return b.String()
}

// CaseInfo decodes a single group evaluation (as produced by EvaluateAll)
// back into the set of single-pair bit-patterns it represents, rendered as
// "TF"-style strings (one character per predicate, in list order).
func (g RelationGroup) CaseInfo(value uint64) string {
	n := uint(g.Size())
	m := uint64(1) << n
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i := uint64(0); i < m; i++ {
		if value&(uint64(1)<<i) == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		for j := uint(0); j < n; j++ {
			if i&(uint64(1)<<j) != 0 {
				b.WriteByte('T')
			} else {
				b.WriteByte('F')
			}
		}
	}
	b.WriteByte('}')
	return b.String()
}
