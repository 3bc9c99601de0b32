package dist

// Combine merges a set of distributions into one, treating each input
// distribution as equally likely (a uniform "distribution of distributions")
// and renormalizing the result.
func Combine[T Comparable[T]](dists []Distribution[T]) Distribution[T] {
	out := New[T]()
	if len(dists) == 0 {
		return out
	}
	weight := 1.0 / float64(len(dists))
	for _, d := range dists {
		for _, v := range d.Values() {
			out.Add(v, weight*d.GetProbability(v))
		}
	}
	out.Normalize()
	return out
}

// CombineWeighted merges dists with the corresponding caller-supplied
// weights (a weighted "distribution of distributions") and renormalizes the
// result. len(weights) must equal len(dists); a mismatch returns an empty
// Distribution.
func CombineWeighted[T Comparable[T]](dists []Distribution[T], weights []float64) Distribution[T] {
	out := New[T]()
	if len(dists) != len(weights) {
		return out
	}
	for i, d := range dists {
		w := weights[i]
		for _, v := range d.Values() {
			out.Add(v, w*d.GetProbability(v))
		}
	}
	out.Normalize()
	return out
}
