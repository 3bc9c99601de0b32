package dist_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/dist"
)

// TestSampleMeanMatchesExpectedValue cross-checks Sample's long-run
// behavior against gonum/stat.Mean: the empirical mean of a scalar
// function of repeated draws should converge to the distribution's
// expected value.
func TestSampleMeanMatchesExpectedValue(t *testing.T) {
	d := dist.New[attrval.Value]()
	d.Add(attrval.New(0), 0.2)
	d.Add(attrval.New(10), 0.8)
	// E[x] = 0*0.2 + 10*0.8 = 8

	rng := rand.New(rand.NewSource(99))
	const trials = 20000
	samples := make([]float64, trials)
	for i := range samples {
		samples[i] = float64(d.Sample(rng).Get(0))
	}
	mean := stat.Mean(samples, nil)
	assert.InDelta(t, 8.0, mean, 0.2)
}
