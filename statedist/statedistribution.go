package statedist

import (
	"math/rand"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/dist"
	"github.com/GabrielRStella/QORA/wstate"
)

// StateDistribution tracks, for each object id, an independent distribution
// over that object's possible readings.
type StateDistribution struct {
	Objects map[int]dist.Distribution[wstate.Object]
}

// New returns a StateDistribution built from a concrete state: every object
// becomes a singleton (weight 1) distribution over itself.
func New(state wstate.State) StateDistribution {
	sd := empty()
	for id, obj := range state.Objects {
		d := dist.New[wstate.Object]()
		d.Add(obj, 1)
		sd.Objects[id] = d
	}
	return sd
}

// NewEmpty returns a StateDistribution with no objects.
func NewEmpty() StateDistribution {
	return empty()
}

func empty() StateDistribution {
	return StateDistribution{Objects: make(map[int]dist.Distribution[wstate.Object])}
}

func (sd *StateDistribution) ensure() {
	if sd.Objects == nil {
		sd.Objects = make(map[int]dist.Distribution[wstate.Object])
	}
}

// AddNewObject adds a degenerate (no-attribute) object at objID, singleton
// distributed over itself. Used as a starting point before
// AddObjectAttribute calls fill in its attributes.
func (sd *StateDistribution) AddNewObject(classID, objID int) {
	sd.ensure()
	d := dist.New[wstate.Object]()
	d.Add(wstate.New(classID, objID, nil), 1)
	sd.Objects[objID] = d
}

// AddObjectDistribution registers distribution as the distribution for the
// object id taken from its first (canonical-order) support value. Every
// value in distribution's support is assumed to share that object id; the
// caller is trusted rather than validating every member. Returns
// ErrEmptyObjectDistribution if distribution has no support.
func (sd *StateDistribution) AddObjectDistribution(distribution dist.Distribution[wstate.Object]) error {
	sd.ensure()
	values := distribution.Values()
	if len(values) == 0 {
		return ErrEmptyObjectDistribution
	}
	sd.Objects[values[0].ObjectID] = distribution
	return nil
}

// AddObjectAttribute extends objID's distribution by fixing attrID to
// value on every supported Object, preserving each Object's existing
// weight. Returns ErrUnknownObjectID if objID was never added.
func (sd *StateDistribution) AddObjectAttribute(objID, attrID int, value attrval.Value) error {
	sd.ensure()
	base, ok := sd.Objects[objID]
	if !ok {
		return ErrUnknownObjectID
	}
	out := dist.New[wstate.Object]()
	for _, o := range base.Values() {
		out.SetProbability(o.With(attrID, value), base.GetProbability(o))
	}
	sd.Objects[objID] = out
	return nil
}

// AddObjectAttributeDistribution extends objID's distribution by taking the
// cartesian product of its existing support with valueDist's support: every
// combination of a base Object and an attribute reading becomes a new
// Object, weighted by the product of their weights. Returns
// ErrUnknownObjectID if objID was never added.
func (sd *StateDistribution) AddObjectAttributeDistribution(objID, attrID int, valueDist dist.Distribution[attrval.Value]) error {
	sd.ensure()
	base, ok := sd.Objects[objID]
	if !ok {
		return ErrUnknownObjectID
	}
	out := dist.New[wstate.Object]()
	for _, o := range base.Values() {
		pObj := base.GetProbability(o)
		for _, v := range valueDist.Values() {
			pAttr := valueDist.GetProbability(v)
			out.SetProbability(o.With(attrID, v), pObj*pAttr)
		}
	}
	sd.Objects[objID] = out
	return nil
}

// Sample draws one concrete State by independently sampling each object's
// distribution.
func (sd StateDistribution) Sample(rng *rand.Rand) wstate.State {
	s := wstate.NewState()
	for _, d := range sd.Objects {
		_ = s.AddObject(d.Sample(rng))
	}
	return s
}

// Error returns the total earth-mover distance between sd and other, summed
// over object ids present in both. For each shared object id, the ground
// metric is wstate.Object.Distance and the transport plan is a greedy
// nearest-pair approximation (see calcEarthMoversDistance) rather than an
// exact min-cost flow solve: an upper bound on the true optimal-transport
// error, exact whenever one side's support has size 1.
func (sd StateDistribution) Error(other StateDistribution) float64 {
	total := 0.0
	for id, d1 := range sd.Objects {
		d2, ok := other.Objects[id]
		if !ok {
			continue
		}
		total += calcEarthMoversDistance(d1, d2)
	}
	return total
}

// ErrorToState returns the expected ground-metric distance between sd and a
// concrete state, summed over object ids present in both: for each shared
// object id, the probability-weighted average of Object.Distance against
// the concrete object. This is StateDistribution.Error's degenerate case
// when the other side has a single-element support.
func (sd StateDistribution) ErrorToState(other wstate.State) float64 {
	total := 0.0
	for id, d := range sd.Objects {
		o, ok := other.Objects[id]
		if !ok {
			continue
		}
		for _, candidate := range d.Values() {
			total += float64(o.Distance(candidate)) * d.GetProbability(candidate)
		}
	}
	return total
}

// weightedObject pairs an Object with its remaining transportable weight.
// wstate.Object embeds a map field and so is not itself a valid Go map key;
// calcEarthMoversDistance tracks remaining weights in parallel slices
// instead of keying a map by Object directly.
type weightedObject struct {
	object wstate.Object
	weight float64
}

func snapshotWeights(d dist.Distribution[wstate.Object]) []weightedObject {
	values := d.Values()
	out := make([]weightedObject, len(values))
	for i, v := range values {
		out[i] = weightedObject{object: v, weight: d.GetProbability(v)}
	}
	return out
}

// calcEarthMoversDistance computes a greedy approximation to the optimal
// transport cost between two weighted Object distributions: repeatedly pick
// the closest still-unmatched pair (by Object.Distance), transfer as much
// weight as the smaller of the two remaining weights allows, and accumulate
// transferred_weight * distance, until one side is exhausted.
func calcEarthMoversDistance(d1, d2 dist.Distribution[wstate.Object]) float64 {
	a := snapshotWeights(d1)
	b := snapshotWeights(d2)
	err := 0.0
	for {
		bestI, bestJ, bestDist := -1, -1, -1
		for i := range a {
			if a[i].weight <= 0 {
				continue
			}
			for j := range b {
				if b[j].weight <= 0 {
					continue
				}
				d := a[i].object.Distance(b[j].object)
				if bestDist < 0 || d < bestDist {
					bestI, bestJ, bestDist = i, j, d
				}
			}
		}
		if bestI < 0 {
			break
		}
		transfer := a[bestI].weight
		if b[bestJ].weight < transfer {
			transfer = b[bestJ].weight
		}
		err += transfer * float64(bestDist)
		a[bestI].weight -= transfer
		b[bestJ].weight -= transfer
	}
	return err
}
