package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GabrielRStella/QORA/stats"
)

func TestEstimateBinomialIntervalKnownValue(t *testing.T) {
	// n=100, ns=50, alpha=0.05 is a textbook Wilson-interval example:
	// roughly (0.404, 0.596).
	ci := stats.EstimateBinomialInterval(100, 50, 0.05)
	assert.InDelta(t, 0.404, ci.Lower, 0.01)
	assert.InDelta(t, 0.596, ci.Upper, 0.01)
}

func TestEstimateBinomialIntervalAllSuccesses(t *testing.T) {
	ci := stats.EstimateBinomialInterval(50, 50, 0.05)
	assert.InDelta(t, 1.0, ci.Upper, 1e-9)
	assert.Greater(t, ci.Lower, 0.9)
}

func TestEstimateBinomialIntervalNarrowsWithMoreTrials(t *testing.T) {
	small := stats.EstimateBinomialInterval(10, 5, 0.05)
	large := stats.EstimateBinomialInterval(1000, 500, 0.05)
	assert.Greater(t, small.Upper-small.Lower, large.Upper-large.Lower)
}

func TestConfidenceIntervalSeparation(t *testing.T) {
	a := stats.ConfidenceInterval{Lower: 0.1, Upper: 0.2}
	b := stats.ConfidenceInterval{Lower: 0.5, Upper: 0.9}
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.LessThan(b))
	assert.False(t, a.GreaterThan(b))
}

func TestConfidenceIntervalOverlapIsNeitherSeparation(t *testing.T) {
	a := stats.ConfidenceInterval{Lower: 0.1, Upper: 0.5}
	b := stats.ConfidenceInterval{Lower: 0.3, Upper: 0.7}
	assert.False(t, a.GreaterThan(b))
	assert.False(t, a.LessThan(b))
}

func TestConfidenceIntervalSub(t *testing.T) {
	a := stats.ConfidenceInterval{Lower: 0.2, Upper: 0.6}
	b := stats.ConfidenceInterval{Lower: 0.1, Upper: 0.3}
	assert.InDelta(t, 0.3, a.Sub(b), 1e-9)
}

func TestConfidenceIntervalValueComparisons(t *testing.T) {
	c := stats.ConfidenceInterval{Lower: 0.4, Upper: 0.6}
	assert.True(t, c.GreaterThanValue(0.3))
	assert.False(t, c.GreaterThanValue(0.5))
	assert.True(t, c.LessThanValue(0.7))
}
