package stats

import "strconv"

// Outcome is a FrequencyTable output bucket, wrapped so it can satisfy
// dist.Comparable and be the element type of a
// dist.Distribution[Outcome].
type Outcome int

// Key returns the canonical string identity of o.
func (o Outcome) Key() string {
	return strconv.Itoa(int(o))
}

// CompareTo orders outcomes numerically.
func (o Outcome) CompareTo(other Outcome) int {
	return int(o) - int(other)
}
