// Package stats implements the Wilson binomial confidence interval and
// FrequencyTable: the tabular conditional-frequency estimator every
// predictor candidate scores itself with.
//
// The inverse-normal-CDF bisection (normalCritical) and its Hart-style
// rational Φ approximation (poz) are hand-rolled on bare math.Sqrt/math.Abs
// rather than built on gonum/stat/distuv's quantile function. This is a
// determinism requirement, not a missing-dependency gap: the persistence
// round-trip and the fixed-observation-order contract need every rebuild
// of an interval to retrace the same floating-point path, not merely an
// equally-accurate one. gonum is still
// used — in this package's property tests only, to generate Monte-Carlo
// Bernoulli trial data and cross-check Wilson coverage, never inside the
// estimator itself.
package stats
