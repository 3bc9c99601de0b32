package qora

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/dist"
	"github.com/GabrielRStella/QORA/predictor"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/statedist"
	"github.com/GabrielRStella/QORA/wstate"
)

// TransitionLearner is the capability set a driver consumes: any learner
// that can observe transitions and predict them back. rng is part of the
// shared contract because some learners sample internally; this package's
// Learner returns analytic distributions and never draws from it.
type TransitionLearner interface {
	Reset()
	Restart()
	ObserveTransition(prev wstate.State, action int, next wstate.State) error
	PredictTransition(s wstate.State, action int, rng *rand.Rand) (statedist.StateDistribution, error)
	Print(w io.Writer)
}

// EffectKey identifies one learning slot: the (object class, attribute)
// pair an effect applies to, under one action.
type EffectKey struct {
	Type   predictor.EffectType
	Action int
}

// CompareTo implements a total order: action id, then effect type.
func (k EffectKey) CompareTo(b EffectKey) int {
	if k.Action != b.Action {
		return k.Action - b.Action
	}
	return k.Type.CompareTo(b.Type)
}

// effectSet tracks every distinct delta observed for one EffectKey, in
// first-seen order.
type effectSet struct {
	indices map[string]int
	values  []attrval.Value
}

func newEffectSet() *effectSet {
	return &effectSet{indices: make(map[string]int)}
}

// add records v, reporting whether it was new.
func (s *effectSet) add(v attrval.Value) bool {
	k := v.Key()
	if _, ok := s.indices[k]; ok {
		return false
	}
	s.indices[k] = len(s.values)
	s.values = append(s.values, v)
	return true
}

// Options configures a Learner's runtime behavior. The zero value is
// silent and fully sequential.
type Options struct {
	Verbose bool
	Log     io.Writer
	// Parallelism bounds how many distinct predictors are updated or
	// queried concurrently per transition. Concurrency is only ever
	// across predictors, never within one, so each predictor still sees
	// its observations in a fixed order; values <= 1 disable it entirely.
	Parallelism int
}

func (o Options) predictorOptions() predictor.Options {
	return predictor.Options{Verbose: o.Verbose, Log: o.Log}
}

func (o Options) logf(format string, args ...any) {
	if o.Verbose && o.Log != nil {
		fmt.Fprintf(o.Log, format, args...)
	}
}

// Learner is the QORA learner: a lazy table of per-(class, attribute,
// action) stochastic effect predictors over a shared type registry.
type Learner struct {
	reg     *registry.Registry
	alpha   float64
	options Options

	observations int
	effects      map[EffectKey]*effectSet
	predictors   map[EffectKey]*predictor.Predictor
}

var _ TransitionLearner = (*Learner)(nil)

// New constructs an empty Learner over reg at confidence level alpha.
func New(reg *registry.Registry, alpha float64, options Options) *Learner {
	return &Learner{
		reg:        reg,
		alpha:      alpha,
		options:    options,
		effects:    make(map[EffectKey]*effectSet),
		predictors: make(map[EffectKey]*predictor.Predictor),
	}
}

// Alpha returns the confidence level the learner was constructed with.
func (l *Learner) Alpha() float64 { return l.alpha }

// Observations returns how many transitions have been observed since the
// last Reset.
func (l *Learner) Observations() int { return l.observations }

// Reset erases everything the learner has learned.
func (l *Learner) Reset() {
	l.observations = 0
	l.effects = make(map[EffectKey]*effectSet)
	l.predictors = make(map[EffectKey]*predictor.Predictor)
}

// Restart is invoked between episodes. QORA learns a single stationary
// transition model, so episode boundaries carry no information: a no-op.
func (l *Learner) Restart() {}

// perKeyObservation is one (target, effect) pair routed to a predictor
// during a single transition.
type perKeyObservation struct {
	target wstate.Object
	effect attrval.Value
}

// ObserveTransition records one (prev, action, next) triple: the
// per-object, per-attribute deltas are computed, new deltas extend each
// slot's effect set (constructing a predictor the moment a slot turns
// stochastic), and every slot that has a predictor feeds it the delta.
func (l *Learner) ObserveTransition(prev wstate.State, action int, next wstate.State) error {
	if _, err := l.reg.Action(action); err != nil {
		return fmt.Errorf("%w: id %d", ErrUnknownAction, action)
	}
	delta, err := next.Diff(prev)
	if err != nil {
		return err
	}
	byClass := prev.ByClass()

	// First pass, sequential: update effect sets, construct any newly
	// needed predictors, and bucket the observations by slot. Object and
	// attribute ids are visited in ascending order so every run routes
	// observations identically.
	perKey := make(map[EffectKey][]perKeyObservation)
	var keys []EffectKey
	for _, id := range sortedObjectIDs(delta.Objects) {
		deltaObj := delta.Objects[id]
		target := prev.Objects[id]
		for _, attrID := range sortedAttributeIDs(deltaObj.Attributes) {
			e := deltaObj.Attributes[attrID]
			key := EffectKey{
				Type:   predictor.EffectType{ClassID: target.ClassID, AttributeID: attrID},
				Action: action,
			}
			set := l.effects[key]
			if set == nil {
				set = newEffectSet()
				l.effects[key] = set
			}
			if set.add(e) && len(set.values) == 2 {
				l.predictors[key] = predictor.New(l.alpha, l.options.predictorOptions())
				l.options.logf("qora: new predictor for class %d attr %d action %d\n",
					key.Type.ClassID, key.Type.AttributeID, action)
			}
			if l.predictors[key] != nil {
				if _, seen := perKey[key]; !seen {
					keys = append(keys, key)
				}
				perKey[key] = append(perKey[key], perKeyObservation{target: target, effect: e})
			}
		}
	}

	// Second pass: feed each touched predictor. Distinct slots share no
	// mutable state (byClass is read-only), so this pass may fan out.
	observeKey := func(key EffectKey) error {
		p := l.predictors[key]
		for _, ob := range perKey[key] {
			if err := p.Observe(l.reg, ob.target.ClassID, ob.target, byClass, ob.effect); err != nil {
				return err
			}
		}
		return nil
	}
	if l.options.Parallelism > 1 && len(keys) > 1 {
		var g errgroup.Group
		g.SetLimit(l.options.Parallelism)
		for _, key := range keys {
			key := key
			g.Go(func() error { return observeKey(key) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, key := range keys {
			if err := observeKey(key); err != nil {
				return err
			}
		}
	}

	l.observations++
	return nil
}

// predictionSlot is one (object, attribute) pair whose next-value
// distribution must be computed by a predictor.
type predictionSlot struct {
	objectID int
	attrID   int
	key      EffectKey
	current  attrval.Value
	result   dist.Distribution[attrval.Value]
}

// PredictTransition returns the distribution over next states the learner
// assigns to taking action in s. Never-observed slots predict no change;
// single-effect slots predict their one delta with certainty; stochastic
// slots are answered by their predictor. rng is unused (see
// TransitionLearner).
func (l *Learner) PredictTransition(s wstate.State, action int, rng *rand.Rand) (statedist.StateDistribution, error) {
	_ = rng
	if _, err := l.reg.Action(action); err != nil {
		return statedist.StateDistribution{}, fmt.Errorf("%w: id %d", ErrUnknownAction, action)
	}
	sd := statedist.New(s)
	byClass := s.ByClass()

	// Gather the work: fixed single-effect slots are applied immediately,
	// stochastic slots are queued for their predictors.
	var slots []*predictionSlot
	for _, id := range sortedObjectIDs(s.Objects) {
		obj := s.Objects[id]
		cls, err := l.reg.ObjectClass(obj.ClassID)
		if err != nil {
			return statedist.StateDistribution{}, fmt.Errorf("%w: id %d", ErrUnknownClass, obj.ClassID)
		}
		for _, attrID := range cls.AttributeIDs {
			current, ok := obj.Get(attrID)
			if !ok {
				continue
			}
			key := EffectKey{
				Type:   predictor.EffectType{ClassID: obj.ClassID, AttributeID: attrID},
				Action: action,
			}
			set := l.effects[key]
			if set == nil {
				continue
			}
			if len(set.values) == 1 {
				if err := sd.AddObjectAttribute(id, attrID, current.Add(set.values[0])); err != nil {
					return statedist.StateDistribution{}, err
				}
				continue
			}
			slots = append(slots, &predictionSlot{objectID: id, attrID: attrID, key: key, current: current})
		}
	}

	// Query the predictors — reads only, so slots may fan out — then
	// attach the results in the fixed slot order.
	query := func(slot *predictionSlot) {
		effDist := l.predictors[slot.key].Predict(s.Objects[slot.objectID], byClass)
		attrDist := dist.New[attrval.Value]()
		for _, e := range effDist.Values() {
			attrDist.Add(slot.current.Add(e), effDist.GetProbability(e))
		}
		slot.result = attrDist
	}
	if l.options.Parallelism > 1 && len(slots) > 1 {
		var g errgroup.Group
		g.SetLimit(l.options.Parallelism)
		for _, slot := range slots {
			slot := slot
			g.Go(func() error { query(slot); return nil })
		}
		_ = g.Wait()
	} else {
		for _, slot := range slots {
			query(slot)
		}
	}
	for _, slot := range slots {
		if err := sd.AddObjectAttributeDistribution(slot.objectID, slot.attrID, slot.result); err != nil {
			return statedist.StateDistribution{}, err
		}
	}
	return sd, nil
}

// Print writes a human-readable dump of the learned model: one
// "always adds" line per deterministic slot, and a full predictor report
// per stochastic slot.
func (l *Learner) Print(w io.Writer) {
	for _, key := range l.sortedKeys() {
		set := l.effects[key]
		actionName := l.actionName(key.Action)
		className, attrName := l.slotNames(key.Type)
		if len(set.values) == 1 {
			fmt.Fprintf(w, "%s: %s.%s always adds %s\n", actionName, className, attrName, set.values[0])
			continue
		}
		fmt.Fprintf(w, "%s: %s.%s\n", actionName, className, attrName)
		if p := l.predictors[key]; p != nil {
			p.WriteReport(w, l.reg, key.Type.ClassID)
		}
	}
}

func (l *Learner) sortedKeys() []EffectKey {
	keys := make([]EffectKey, 0, len(l.effects))
	for key := range l.effects {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CompareTo(keys[j]) < 0 })
	return keys
}

func (l *Learner) actionName(id int) string {
	if a, err := l.reg.Action(id); err == nil {
		return a.Name
	}
	return fmt.Sprintf("action#%d", id)
}

func (l *Learner) slotNames(et predictor.EffectType) (string, string) {
	className := fmt.Sprintf("class#%d", et.ClassID)
	if c, err := l.reg.ObjectClass(et.ClassID); err == nil {
		className = c.Name
	}
	attrName := fmt.Sprintf("attr#%d", et.AttributeID)
	if a, err := l.reg.AttributeType(et.AttributeID); err == nil {
		attrName = a.Name
	}
	return className, attrName
}

func sortedObjectIDs(objects map[int]wstate.Object) []int {
	ids := make([]int, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedAttributeIDs(attrs map[int]attrval.Value) []int {
	ids := make([]int, 0, len(attrs))
	for id := range attrs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
