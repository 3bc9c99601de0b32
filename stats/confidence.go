package stats

import "math"

// ConfidenceInterval is a closed interval [Lower, Upper] estimating a
// binomial success probability.
type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// GreaterThanValue reports whether the entire interval lies above d.
func (c ConfidenceInterval) GreaterThanValue(d float64) bool {
	return c.Lower > d
}

// LessThanValue reports whether the entire interval lies below d.
func (c ConfidenceInterval) LessThanValue(d float64) bool {
	return c.Upper < d
}

// GreaterThan reports whether c lies entirely above other — a strict
// separation test, not a midpoint comparison.
func (c ConfidenceInterval) GreaterThan(other ConfidenceInterval) bool {
	return c.Lower > other.Upper
}

// LessThan reports whether c lies entirely below other.
func (c ConfidenceInterval) LessThan(other ConfidenceInterval) bool {
	return c.Upper < other.Lower
}

// Sub returns max(c.Upper-other.Upper, c.Lower-other.Lower), a cheap
// diagnostic measure of "how much better" c is than other. Verbose
// promotion traces report it once c.GreaterThan(other) holds.
func (c ConfidenceInterval) Sub(other ConfidenceInterval) float64 {
	return math.Max(c.Upper-other.Upper, c.Lower-other.Lower)
}

const (
	zMax     = 6.0
	zEpsilon = 0.000001
)

// poz is a Hart-style rational approximation of the standard normal CDF
// Φ(z). The polynomial is pinned so normalCritical's bisection always
// retraces the same floating-point path: recomputing an interval from
// persisted counts must reproduce it bit for bit.
func poz(z float64) float64 {
	var x float64
	if z == 0.0 {
		x = 0.0
	} else {
		y := 0.5 * math.Abs(z)
		switch {
		case y > zMax*0.5:
			x = 1.0
		case y < 1.0:
			w := y * y
			x = ((((((((0.000124818987*w-
				0.001075204047)*w+0.005198775019)*w-
				0.019198292004)*w+0.059054035642)*w-
				0.151968751364)*w+0.319152932694)*w-
				0.531923007300)*w+0.797884560593) * y * 2.0
		default:
			y -= 2.0
			x = (((((((((((((-0.000045255659*y+
				0.000152529290)*y-0.000019538132)*y-
				0.000676904986)*y+0.001390604284)*y-
				0.000794620820)*y-0.002034254874)*y+
				0.006549791214)*y-0.010557625006)*y+
				0.011630447319)*y-0.009279453341)*y+
				0.005353579108)*y-0.002141268741)*y+
				0.000535310849)*y + 0.999936657524
		}
	}
	if z > 0.0 {
		return (x + 1.0) * 0.5
	}
	return (1.0 - x) * 0.5
}

// normalCritical is the inverse of poz: bisects for the z such that
// poz(z) ~ p, to within zEpsilon, on [-zMax, zMax].
func normalCritical(p float64) float64 {
	if p < 0.0 || p > 1.0 {
		return 0
	}
	minz, maxz := -zMax, zMax
	zval := 0.0
	for (maxz - minz) > zEpsilon {
		pval := poz(zval)
		if pval > p {
			maxz = zval
		} else {
			minz = zval
		}
		zval = (maxz + minz) * 0.5
	}
	return zval
}

// EstimateBinomialInterval computes the Wilson score confidence interval
// for a binomial proportion: ns successes out of n trials, at confidence
// level 1-alpha.
func EstimateBinomialInterval(n, ns uint64, alpha float64) ConfidenceInterval {
	nf := n - ns
	z := normalCritical(1 - alpha/2)
	z2 := z * z
	nFloat := float64(n)
	center := (float64(ns) + z2/2) / (nFloat + z2)
	rootPart := (float64(ns)*float64(nf))/nFloat + z2/4
	radius := (z / (nFloat + z2)) * math.Sqrt(rootPart)
	return ConfidenceInterval{Lower: center - radius, Upper: center + radius}
}
