package dist

import (
	"math/rand"
	"sort"
)

// Comparable is the constraint Distribution requires of its element type:
// a stable string identity for bucketing (since T itself may not be a valid
// Go map key) and a total order for breaking ties in Max.
type Comparable[T any] interface {
	Key() string
	CompareTo(other T) int
}

type entry[T Comparable[T]] struct {
	value  T
	weight float64
}

// Distribution is a sparse, weighted collection of values of type T.
// The zero value is an empty distribution ready to use.
type Distribution[T Comparable[T]] struct {
	buckets map[string]*entry[T]
}

// New returns an empty Distribution.
func New[T Comparable[T]]() Distribution[T] {
	return Distribution[T]{buckets: make(map[string]*entry[T])}
}

func (d *Distribution[T]) ensure() {
	if d.buckets == nil {
		d.buckets = make(map[string]*entry[T])
	}
}

// Add accumulates weight onto the bucket keyed by value.Key(), creating it
// if absent. If the resulting weight is exactly zero the bucket is
// removed.
func (d *Distribution[T]) Add(value T, weight float64) {
	d.ensure()
	k := value.Key()
	if e, ok := d.buckets[k]; ok {
		e.weight += weight
		if e.weight == 0 {
			delete(d.buckets, k)
		}
		return
	}
	if weight == 0 {
		return
	}
	d.buckets[k] = &entry[T]{value: value, weight: weight}
}

// SetProbability overwrites the weight of value's bucket, creating it if
// absent. Setting a weight of exactly zero removes the bucket.
func (d *Distribution[T]) SetProbability(value T, weight float64) {
	d.ensure()
	k := value.Key()
	if weight == 0 {
		delete(d.buckets, k)
		return
	}
	d.buckets[k] = &entry[T]{value: value, weight: weight}
}

// AddProbability is an alias of Add, kept for naming symmetry with
// GetProbability and SetProbability.
func (d *Distribution[T]) AddProbability(value T, weight float64) {
	d.Add(value, weight)
}

// GetProbability returns the raw (possibly unnormalized) weight of value,
// or 0 if value has never been added.
func (d Distribution[T]) GetProbability(value T) float64 {
	if e, ok := d.buckets[value.Key()]; ok {
		return e.weight
	}
	return 0
}

// TotalWeight returns the sum of all bucket weights.
func (d Distribution[T]) TotalWeight() float64 {
	total := 0.0
	for _, e := range d.buckets {
		total += e.weight
	}
	return total
}

// Size returns the number of distinct values with nonzero presence.
func (d Distribution[T]) Size() int {
	return len(d.buckets)
}

// IsEmpty reports whether the distribution has no buckets at all.
func (d Distribution[T]) IsEmpty() bool {
	return len(d.buckets) == 0
}

// Normalize rescales every bucket's weight so TotalWeight() == 1. A no-op on
// an empty distribution.
func (d *Distribution[T]) Normalize() {
	total := d.TotalWeight()
	if total == 0 {
		return
	}
	for _, e := range d.buckets {
		e.weight /= total
	}
}

// sortedEntries returns the buckets ordered by T.CompareTo, used to make
// Sample and Max deterministic given a deterministic iteration order.
func (d Distribution[T]) sortedEntries() []*entry[T] {
	out := make([]*entry[T], 0, len(d.buckets))
	for _, e := range d.buckets {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].value.CompareTo(out[j].value) < 0
	})
	return out
}

// Sample draws a single value with probability proportional to its weight,
// using rng as the source of randomness. Panics with ErrEmptyDistribution if
// TotalWeight() is 0.
func (d Distribution[T]) Sample(rng *rand.Rand) T {
	entries := d.sortedEntries()
	total := 0.0
	for _, e := range entries {
		total += e.weight
	}
	if total <= 0 {
		panic(ErrEmptyDistribution)
	}
	target := rng.Float64() * total
	acc := 0.0
	for _, e := range entries {
		acc += e.weight
		if target < acc {
			return e.value
		}
	}
	// floating point rounding: fall back to the last entry in order.
	return entries[len(entries)-1].value
}

// Max returns the value with the greatest weight. Ties are broken in favor
// of the value that sorts first under T.CompareTo, so the result never
// depends on map iteration order. Panics with ErrEmptyDistribution if the
// distribution is empty.
func (d Distribution[T]) Max() T {
	entries := d.sortedEntries()
	if len(entries) == 0 {
		panic(ErrEmptyDistribution)
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.weight > best.weight {
			best = e
		}
	}
	return best.value
}

// Values returns the distribution's values in their canonical (CompareTo)
// order. Weights are not included; read them with GetProbability.
func (d Distribution[T]) Values() []T {
	entries := d.sortedEntries()
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}
