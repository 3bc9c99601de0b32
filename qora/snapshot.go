package qora

import (
	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/predictor"
	"github.com/GabrielRStella/QORA/registry"
)

// EffectEntry is one slot's observed effect set, in first-seen order.
type EffectEntry struct {
	Key     EffectKey
	Effects []attrval.Value
}

// PredictorEntry is one stochastic slot's predictor state.
type PredictorEntry struct {
	Key       EffectKey
	Predictor predictor.Snapshot
}

// Snapshot is the complete persistable state of a Learner, with entries
// sorted by EffectKey so equal learners always snapshot identically. Like
// predictor.Snapshot, it aliases the live learner's tables and must be
// encoded before the learner observes again.
type Snapshot struct {
	Alpha        float64
	Observations int
	Effects      []EffectEntry
	Predictors   []PredictorEntry
}

// Snapshot captures l's current state.
func (l *Learner) Snapshot() Snapshot {
	snap := Snapshot{Alpha: l.alpha, Observations: l.observations}
	for _, key := range l.sortedKeys() {
		set := l.effects[key]
		effects := make([]attrval.Value, len(set.values))
		copy(effects, set.values)
		snap.Effects = append(snap.Effects, EffectEntry{Key: key, Effects: effects})
		if p, ok := l.predictors[key]; ok {
			snap.Predictors = append(snap.Predictors, PredictorEntry{Key: key, Predictor: p.Snapshot()})
		}
	}
	return snap
}

// FromSnapshot reconstructs a Learner over reg from a Snapshot. The
// snapshot's entries need not be sorted; predictors are rebuilt at the
// snapshot's alpha with every success interval recomputed from counts.
func FromSnapshot(reg *registry.Registry, options Options, snap Snapshot) *Learner {
	l := New(reg, snap.Alpha, options)
	l.observations = snap.Observations
	for _, e := range snap.Effects {
		set := newEffectSet()
		for _, v := range e.Effects {
			set.add(v)
		}
		l.effects[e.Key] = set
	}
	for _, pe := range snap.Predictors {
		l.predictors[pe.Key] = predictor.FromSnapshot(snap.Alpha, options.predictorOptions(), pe.Predictor)
	}
	return l
}
