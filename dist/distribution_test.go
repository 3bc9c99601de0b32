package dist_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/dist"
)

func TestAddAndGetProbability(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(1, 0)
	b := attrval.New(0, 1)

	d.Add(a, 3)
	d.Add(b, 1)
	d.Add(a, 1) // accumulates

	assert.Equal(t, 4.0, d.GetProbability(a))
	assert.Equal(t, 1.0, d.GetProbability(b))
	assert.Equal(t, 5.0, d.TotalWeight())
	assert.Equal(t, 2, d.Size())
}

func TestSetProbabilityOverwrites(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(1)
	d.Add(a, 5)
	d.SetProbability(a, 2)
	assert.Equal(t, 2.0, d.GetProbability(a))
}

func TestNormalize(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(1)
	b := attrval.New(2)
	d.Add(a, 3)
	d.Add(b, 1)
	d.Normalize()
	assert.InDelta(t, 0.75, d.GetProbability(a), 1e-9)
	assert.InDelta(t, 0.25, d.GetProbability(b), 1e-9)
	assert.InDelta(t, 1.0, d.TotalWeight(), 1e-9)
}

func TestNormalizeEmptyIsNoOp(t *testing.T) {
	d := dist.New[attrval.Value]()
	assert.NotPanics(t, func() { d.Normalize() })
	assert.True(t, d.IsEmpty())
}

func TestMaxBreaksTiesByCompareTo(t *testing.T) {
	d := dist.New[attrval.Value]()
	small := attrval.New(0, 0)
	large := attrval.New(9, 9)
	d.Add(small, 1)
	d.Add(large, 1)
	// equal weight: Max must deterministically prefer the CompareTo-least.
	assert.True(t, d.Max().Equal(small))
}

func TestMaxPrefersGreaterWeight(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(9, 9)
	b := attrval.New(0, 0)
	d.Add(a, 1)
	d.Add(b, 5)
	assert.True(t, d.Max().Equal(b))
}

func TestMaxPanicsOnEmpty(t *testing.T) {
	d := dist.New[attrval.Value]()
	assert.Panics(t, func() { d.Max() })
}

func TestSamplePanicsOnEmpty(t *testing.T) {
	d := dist.New[attrval.Value]()
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { d.Sample(rng) })
}

func TestSampleConvergesToWeights(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(1)
	b := attrval.New(2)
	d.Add(a, 0.8)
	d.Add(b, 0.2)

	rng := rand.New(rand.NewSource(42))
	const trials = 20000
	countA := 0
	for i := 0; i < trials; i++ {
		if d.Sample(rng).Equal(a) {
			countA++
		}
	}
	ratio := float64(countA) / float64(trials)
	assert.InDelta(t, 0.8, ratio, 0.02)
}

func TestAddRemovesBucketOnZeroWeight(t *testing.T) {
	d := dist.New[attrval.Value]()
	a := attrval.New(1)
	d.Add(a, 3)
	d.Add(a, -3)
	assert.Equal(t, 0, d.Size())
	assert.Equal(t, 0.0, d.GetProbability(a))
}

func TestCombineUniform(t *testing.T) {
	a := attrval.New(1)
	b := attrval.New(2)

	d1 := dist.New[attrval.Value]()
	d1.Add(a, 1)
	d2 := dist.New[attrval.Value]()
	d2.Add(b, 1)

	combined := dist.Combine([]dist.Distribution[attrval.Value]{d1, d2})
	require.Equal(t, 2, combined.Size())
	assert.InDelta(t, 0.5, combined.GetProbability(a), 1e-9)
	assert.InDelta(t, 0.5, combined.GetProbability(b), 1e-9)
}

func TestCombineWeighted(t *testing.T) {
	a := attrval.New(1)
	b := attrval.New(2)

	d1 := dist.New[attrval.Value]()
	d1.Add(a, 1)
	d2 := dist.New[attrval.Value]()
	d2.Add(b, 1)

	combined := dist.CombineWeighted([]dist.Distribution[attrval.Value]{d1, d2}, []float64{3, 1})
	assert.InDelta(t, 0.75, combined.GetProbability(a), 1e-9)
	assert.InDelta(t, 0.25, combined.GetProbability(b), 1e-9)
}

func TestCombineWeightedMismatchedLengthsReturnsEmpty(t *testing.T) {
	d1 := dist.New[attrval.Value]()
	d1.Add(attrval.New(1), 1)
	combined := dist.CombineWeighted([]dist.Distribution[attrval.Value]{d1}, nil)
	assert.True(t, combined.IsEmpty())
}
