package predictor

import (
	"fmt"
	"io"
	"sort"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/condition"
	"github.com/GabrielRStella/QORA/dist"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/stats"
	"github.com/GabrielRStella/QORA/wstate"
)

// Options configures a Predictor's diagnostic behavior. The zero value is
// silent (Verbose false, Log unused).
type Options struct {
	Verbose bool
	Log     io.Writer
}

func (o Options) logf(format string, args ...any) {
	if o.Verbose && o.Log != nil {
		fmt.Fprintf(o.Log, format, args...)
	}
}

// Predictor is a StochasticEffectPredictor for one fixed (object class,
// attribute, action) triple.
type Predictor struct {
	alpha   float64
	options Options

	observed   map[string]condition.Condition
	working    []Candidate
	hypotheses []Candidate
	baseline   stats.FrequencyTable

	effectCount   int
	effectIndices map[string]int
	effects       []attrval.Value
}

// New returns a Predictor at the given confidence level (alpha — e.g. 0.01
// for a 99% confidence interval).
func New(alpha float64, options Options) *Predictor {
	return &Predictor{
		alpha:         alpha,
		options:       options,
		observed:      make(map[string]condition.Condition),
		baseline:      stats.NewFrequencyTable(1),
		effectIndices: make(map[string]int),
	}
}

func (p *Predictor) testAdd(cp condition.Condition) {
	key := cp.Key()
	if _, exists := p.observed[key]; exists {
		return
	}
	p.observed[key] = cp
	p.working = append(p.working, Candidate{Condition: cp, Table: stats.NewFrequencyTable(int(cp.StateSize()))})
}

func (p *Predictor) testAddPairs(a, b condition.Condition) {
	p.testAdd(a.Add(b))
}

func (p *Predictor) effectIndex(effect attrval.Value) int {
	key := effect.Key()
	if idx, ok := p.effectIndices[key]; ok {
		return idx
	}
	idx := p.effectCount
	p.effectCount++
	p.effectIndices[key] = idx
	p.effects = append(p.effects, effect)
	return idx
}

// Observe records one occurrence of target transitioning to effect (in the
// attribute this Predictor is responsible for), given target's class
// (looked up in reg) and the other objects present, indexed by class id.
// target must belong to targetClassID as registered in reg.
func (p *Predictor) Observe(reg *registry.Registry, targetClassID int, target wstate.Object, objectsByClass map[int][]wstate.Object, effect attrval.Value) error {
	targetClass, err := reg.ObjectClass(targetClassID)
	if err != nil {
		return ErrUnknownTargetClass
	}

	effectIdx := p.effectIndex(effect)

	p.baseline.Observe(0, effectIdx)
	p.baseline.Recalculate(p.alpha)

	for i := range p.hypotheses {
		p.hypotheses[i].Observe(target, objectsByClass, effectIdx)
		p.hypotheses[i].Table.Recalculate(p.alpha)
	}

	// bubble up the best-scoring hypotheses toward index 0 (excluding it).
	for i := len(p.hypotheses) - 2; i > 0; i-- {
		a, b := p.hypotheses[i], p.hypotheses[i+1]
		if b.Table.GreaterThan(a.Table) {
			p.hypotheses[i], p.hypotheses[i+1] = b, a
		}
	}
	// settle the head: if hypothesis 1 now beats hypothesis 0, swap them in
	// and reset everything that isn't itself a hypothesis, since it's now
	// conditional on a new best rule; also seed compound candidates pairing
	// the new best with every other hypothesis.
	if len(p.hypotheses) > 1 {
		a, b := p.hypotheses[0], p.hypotheses[1]
		if b.Table.GreaterThan(a.Table) {
			p.hypotheses[0], p.hypotheses[1] = b, a
			p.baseline.Reset()
			for i := range p.working {
				p.working[i].Table.Reset()
			}
			for i := 2; i < len(p.hypotheses); i++ {
				p.testAddPairs(p.hypotheses[0].Condition, p.hypotheses[i].Condition)
			}
			p.options.logf("predictor: new best hypothesis %s\n", p.hypotheses[0].Condition.Key())
		}
	}

	// if the current best hypothesis already perfectly predicted this
	// observation, nothing more to learn from it: skip candidate
	// generation entirely to let the working set focus on residual error.
	if len(p.hypotheses) > 0 {
		top := p.hypotheses[0]
		stateIn := top.Condition.Evaluate(target, objectsByClass)
		if top.Table.Confidence(int(stateIn)) == 1 && top.Table.Predict(int(stateIn)) == effectIdx {
			return nil
		}
	}

	// seed singleton target-only predicates.
	for _, attrID := range targetClass.AttributeIDs {
		v, _ := target.Get(attrID)
		p.testAdd(condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
			condition.Predicate{AttributeID: attrID, IsTarget: true, Value: v})))
	}
	// seed singleton relational predicates against every other object.
	// Class ids are visited in ascending order so the working set grows in
	// the same order on every run regardless of map layout.
	otherClassIDs := make([]int, 0, len(objectsByClass))
	for id := range objectsByClass {
		otherClassIDs = append(otherClassIDs, id)
	}
	sort.Ints(otherClassIDs)
	for _, otherClassID := range otherClassIDs {
		otherClass, err := reg.ObjectClass(otherClassID)
		if err != nil {
			continue
		}
		for _, other := range objectsByClass[otherClassID] {
			if other.ObjectID == target.ObjectID {
				continue
			}
			for _, attrID := range targetClass.AttributeIDs {
				if !otherClass.HasAttribute(attrID) {
					continue
				}
				tv, _ := target.Get(attrID)
				ov, _ := other.Get(attrID)
				p.testAdd(condition.NewCondition(condition.NewRelationGroup(otherClassID,
					condition.Predicate{AttributeID: attrID, IsRelative: true, Value: ov.Sub(tv)})))
			}
			for _, attrID := range otherClass.AttributeIDs {
				ov, _ := other.Get(attrID)
				p.testAdd(condition.NewCondition(condition.NewRelationGroup(otherClassID,
					condition.Predicate{AttributeID: attrID, IsTarget: false, Value: ov})))
			}
		}
	}

	// observe every working candidate; promote anything that now beats
	// the baseline into hypotheses.
	baselineScore := p.baseline.SuccessInterval()
	i := 0
	for i < len(p.working) {
		c := &p.working[i]
		c.Observe(target, objectsByClass, effectIdx)
		c.Table.Recalculate(p.alpha)
		if c.Table.SuccessInterval().GreaterThan(baselineScore) {
			lift := c.Table.SuccessInterval().Sub(baselineScore)
			promoted := *c
			promoted.Table.Reset()
			p.working = append(p.working[:i], p.working[i+1:]...)
			p.hypotheses = append(p.hypotheses, promoted)
			if len(p.hypotheses) > 1 {
				p.testAddPairs(p.hypotheses[0].Condition, promoted.Condition)
			} else {
				p.baseline.Reset()
				baselineScore = p.baseline.SuccessInterval()
				for j := range p.working {
					p.working[j].Table.Reset()
				}
			}
			p.options.logf("predictor: promoted %s to hypotheses (interval lift %+.3f)\n",
				promoted.Condition.Key(), lift)
			continue
		}
		i++
	}

	return nil
}

// Predict returns a distribution over effect values for target, using the
// top hypothesis if one exists, otherwise the baseline.
func (p *Predictor) Predict(target wstate.Object, objectsByClass map[int][]wstate.Object) dist.Distribution[attrval.Value] {
	var prediction dist.Distribution[stats.Outcome]
	if len(p.hypotheses) == 0 {
		prediction = p.baseline.ConditionalDistribution(0)
	} else {
		top := p.hypotheses[0]
		stateIn := top.Condition.Evaluate(target, objectsByClass)
		prediction = top.Table.ConditionalDistribution(int(stateIn))
	}
	if prediction.IsEmpty() {
		prediction.SetProbability(stats.Outcome(0), 1.0)
	}

	out := dist.New[attrval.Value]()
	for _, o := range prediction.Values() {
		idx := int(o)
		if idx >= 0 && idx < len(p.effects) {
			out.SetProbability(p.effects[idx], prediction.GetProbability(o))
		}
	}
	return out
}

// ObservedConditions returns every Condition ever added to the observed
// set, in no particular order.
func (p *Predictor) ObservedConditions() []condition.Condition {
	out := make([]condition.Condition, 0, len(p.observed))
	for _, c := range p.observed {
		out = append(out, c)
	}
	return out
}

// CountPredicatesObserved returns the number of distinct conditions ever
// tried.
func (p *Predictor) CountPredicatesObserved() int { return len(p.observed) }

// CountPredicatesTracked returns the size of the current working set.
func (p *Predictor) CountPredicatesTracked() int { return len(p.working) }

// CountHypothesesTracked returns the number of promoted hypotheses.
func (p *Predictor) CountHypothesesTracked() int { return len(p.hypotheses) }

// WriteReport writes a human-readable dump of the predictor's effect list,
// top hypotheses, and baseline distribution.
func (p *Predictor) WriteReport(w io.Writer, reg *registry.Registry, targetClassID int) {
	fmt.Fprintln(w, "   Effects:")
	for i, e := range p.effects {
		fmt.Fprintf(w, "    [%d] %s\n", i, e)
	}

	if len(p.hypotheses) > 0 {
		fmt.Fprintf(w, "   Hypotheses: %d\n", len(p.hypotheses))
		limit := len(p.hypotheses)
		if limit > 3 {
			limit = 3
		}
		for i := 0; i < limit; i++ {
			fmt.Fprintf(w, "    [%d]\n", i)
			p.hypotheses[i].WriteReport(w, reg, targetClassID, p.effects)
		}
	} else {
		fmt.Fprintln(w, "   Hypotheses: none")
	}

	fmt.Fprintf(w, "   Observed: %d\n", len(p.observed))
	fmt.Fprintf(w, "   Working set: %d\n", len(p.working))

	fmt.Fprintln(w, "   Baseline:")
	fmt.Fprintf(w, "    %s\n", p.baseline)
	fmt.Fprint(w, "     ")
	for i, e := range p.effects {
		if i > 0 {
			fmt.Fprint(w, "; ")
		}
		fmt.Fprintf(w, "%s %.2f%%", e, p.baseline.FrequencyConditional(0, i)*100)
	}
	fmt.Fprintln(w)
}
