package predictor

import (
	"sort"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/condition"
	"github.com/GabrielRStella/QORA/stats"
)

// Snapshot is the complete persistable state of a Predictor: everything
// needed to reconstruct one that predicts identically. The frequency
// tables inside a Snapshot alias the live Predictor's tables, so a
// Snapshot must be encoded (or deep-copied) before the Predictor observes
// again.
type Snapshot struct {
	Observed   []condition.Condition
	Working    []Candidate
	Hypotheses []Candidate
	Baseline   stats.FrequencyTable
	Effects    []attrval.Value
}

// Snapshot captures p's current state. Observed is sorted by condition key
// so that two predictors with the same learned state always produce the
// same snapshot, regardless of the order the conditions were generated in.
func (p *Predictor) Snapshot() Snapshot {
	observed := p.ObservedConditions()
	sort.Slice(observed, func(i, j int) bool { return observed[i].Key() < observed[j].Key() })
	working := make([]Candidate, len(p.working))
	copy(working, p.working)
	hypotheses := make([]Candidate, len(p.hypotheses))
	copy(hypotheses, p.hypotheses)
	effects := make([]attrval.Value, len(p.effects))
	copy(effects, p.effects)
	return Snapshot{
		Observed:   observed,
		Working:    working,
		Hypotheses: hypotheses,
		Baseline:   p.baseline,
		Effects:    effects,
	}
}

// FromSnapshot reconstructs a Predictor from a Snapshot at the given
// confidence level. Every table is recalculated at alpha, so the success
// intervals of the result are derived from the snapshot's counts rather
// than carried over — decoded counts reproduce the intervals exactly.
func FromSnapshot(alpha float64, options Options, snap Snapshot) *Predictor {
	p := New(alpha, options)
	for _, c := range snap.Observed {
		p.observed[c.Key()] = c
	}
	p.working = append(p.working, snap.Working...)
	p.hypotheses = append(p.hypotheses, snap.Hypotheses...)
	p.baseline = snap.Baseline
	for i, e := range snap.Effects {
		p.effectIndices[e.Key()] = i
		p.effects = append(p.effects, e)
	}
	p.effectCount = len(snap.Effects)
	p.baseline.Recalculate(alpha)
	for i := range p.working {
		p.working[i].Table.Recalculate(alpha)
	}
	for i := range p.hypotheses {
		p.hypotheses[i].Table.Recalculate(alpha)
	}
	return p
}
