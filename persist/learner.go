package persist

import (
	"encoding/json"
	"fmt"

	"github.com/GabrielRStella/QORA/predictor"
	"github.com/GabrielRStella/QORA/qora"
	"github.com/GabrielRStella/QORA/registry"
)

// LearnerName is the name field every document this package encodes
// carries.
const LearnerName = "qora"

// EncodeLearner renders l as a JSON document. domain travels through
// uninterpreted; pass the zero value if there is no environment to name.
func EncodeLearner(l *qora.Learner, reg *registry.Registry, domain DomainDocument) ([]byte, error) {
	snap := l.Snapshot()
	doc := LearnerDocument{
		Name:         LearnerName,
		Parameters:   ParametersDocument{Alpha: snap.Alpha},
		Domain:       domain,
		Observations: snap.Observations,
	}
	for i, e := range snap.Effects {
		path := fmt.Sprintf("model.effects[%d]", i)
		et, action, err := encodeEffectKey(e.Key, reg, path)
		if err != nil {
			return nil, err
		}
		doc.Model.Effects = append(doc.Model.Effects, EffectListDocument{
			EffectType: et,
			Action:     action,
			Effects:    e.Effects,
		})
	}
	for i, pe := range snap.Predictors {
		path := fmt.Sprintf("model.predictors[%d]", i)
		et, action, err := encodeEffectKey(pe.Key, reg, path)
		if err != nil {
			return nil, err
		}
		pdoc, err := encodePredictor(pe.Predictor, reg, path+".predictor")
		if err != nil {
			return nil, err
		}
		doc.Model.Predictors = append(doc.Model.Predictors, PredictorEntryDocument{
			EffectType: et,
			Action:     action,
			Predictor:  pdoc,
		})
	}
	return json.MarshalIndent(doc, "", " ")
}

// DecodeLearner rebuilds a learner from a document produced by
// EncodeLearner, resolving every name against reg. The returned domain
// document is the one stored at encode time.
func DecodeLearner(data []byte, reg *registry.Registry, options qora.Options) (*qora.Learner, DomainDocument, error) {
	var doc LearnerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, DomainDocument{}, fmt.Errorf("%w: learner: %v", ErrDecode, err)
	}
	if doc.Name != LearnerName {
		return nil, DomainDocument{}, fmt.Errorf("%w: name %q", ErrWrongLearner, doc.Name)
	}
	if doc.Parameters.Alpha <= 0 || doc.Parameters.Alpha >= 1 {
		return nil, DomainDocument{}, fmt.Errorf("%w: parameters.alpha %v not in (0, 1)", ErrDecode, doc.Parameters.Alpha)
	}
	snap := qora.Snapshot{Alpha: doc.Parameters.Alpha, Observations: doc.Observations}
	for i, e := range doc.Model.Effects {
		path := fmt.Sprintf("model.effects[%d]", i)
		key, err := decodeEffectKey(e.EffectType, e.Action, reg, path)
		if err != nil {
			return nil, DomainDocument{}, err
		}
		snap.Effects = append(snap.Effects, qora.EffectEntry{Key: key, Effects: e.Effects})
	}
	for i, pe := range doc.Model.Predictors {
		path := fmt.Sprintf("model.predictors[%d]", i)
		key, err := decodeEffectKey(pe.EffectType, pe.Action, reg, path)
		if err != nil {
			return nil, DomainDocument{}, err
		}
		psnap, err := decodePredictor(pe.Predictor, reg, path+".predictor")
		if err != nil {
			return nil, DomainDocument{}, err
		}
		snap.Predictors = append(snap.Predictors, qora.PredictorEntry{Key: key, Predictor: psnap})
	}
	return qora.FromSnapshot(reg, options, snap), doc.Domain, nil
}

func encodeEffectKey(key qora.EffectKey, reg *registry.Registry, path string) (EffectTypeDocument, string, error) {
	cls, err := reg.ObjectClass(key.Type.ClassID)
	if err != nil {
		return EffectTypeDocument{}, "", fmt.Errorf("%w: %s.effect_type.object_type id %d", ErrUnknownName, path, key.Type.ClassID)
	}
	at, err := reg.AttributeType(key.Type.AttributeID)
	if err != nil {
		return EffectTypeDocument{}, "", fmt.Errorf("%w: %s.effect_type.attribute_type id %d", ErrUnknownName, path, key.Type.AttributeID)
	}
	action, err := reg.Action(key.Action)
	if err != nil {
		return EffectTypeDocument{}, "", fmt.Errorf("%w: %s.action id %d", ErrUnknownName, path, key.Action)
	}
	return EffectTypeDocument{ObjectType: cls.Name, AttributeType: at.Name}, action.Name, nil
}

func decodeEffectKey(et EffectTypeDocument, action string, reg *registry.Registry, path string) (qora.EffectKey, error) {
	cls, err := reg.ObjectClassByName(et.ObjectType)
	if err != nil {
		return qora.EffectKey{}, fmt.Errorf("%w: %s.effect_type.object_type %q", ErrUnknownName, path, et.ObjectType)
	}
	at, err := reg.AttributeTypeByName(et.AttributeType)
	if err != nil {
		return qora.EffectKey{}, fmt.Errorf("%w: %s.effect_type.attribute_type %q", ErrUnknownName, path, et.AttributeType)
	}
	a, err := reg.ActionByName(action)
	if err != nil {
		return qora.EffectKey{}, fmt.Errorf("%w: %s.action %q", ErrUnknownName, path, action)
	}
	return qora.EffectKey{
		Type:   predictor.EffectType{ClassID: cls.ID, AttributeID: at.ID},
		Action: a.ID,
	}, nil
}

func encodePredictor(snap predictor.Snapshot, reg *registry.Registry, path string) (PredictorDocument, error) {
	doc := PredictorDocument{Baseline: snap.Baseline, Effects: snap.Effects}
	for i, c := range snap.Observed {
		cdoc, err := encodeCondition(c, reg, fmt.Sprintf("%s.observed[%d]", path, i))
		if err != nil {
			return PredictorDocument{}, err
		}
		doc.Observed = append(doc.Observed, cdoc)
	}
	var err error
	if doc.Current, err = encodeCandidates(snap.Working, reg, path+".current"); err != nil {
		return PredictorDocument{}, err
	}
	if doc.Hypotheses, err = encodeCandidates(snap.Hypotheses, reg, path+".hypotheses"); err != nil {
		return PredictorDocument{}, err
	}
	return doc, nil
}

func encodeCandidates(candidates []predictor.Candidate, reg *registry.Registry, path string) ([]CandidateDocument, error) {
	out := make([]CandidateDocument, 0, len(candidates))
	for i, c := range candidates {
		cdoc, err := encodeCondition(c.Condition, reg, fmt.Sprintf("%s[%d].condition", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, CandidateDocument{Condition: cdoc, Table: c.Table})
	}
	return out, nil
}

func decodePredictor(doc PredictorDocument, reg *registry.Registry, path string) (predictor.Snapshot, error) {
	snap := predictor.Snapshot{Baseline: doc.Baseline, Effects: doc.Effects}
	for i, cdoc := range doc.Observed {
		c, err := decodeCondition(cdoc, reg, fmt.Sprintf("%s.observed[%d]", path, i))
		if err != nil {
			return predictor.Snapshot{}, err
		}
		snap.Observed = append(snap.Observed, c)
	}
	var err error
	if snap.Working, err = decodeCandidates(doc.Current, reg, path+".current"); err != nil {
		return predictor.Snapshot{}, err
	}
	if snap.Hypotheses, err = decodeCandidates(doc.Hypotheses, reg, path+".hypotheses"); err != nil {
		return predictor.Snapshot{}, err
	}
	return snap, nil
}

func decodeCandidates(docs []CandidateDocument, reg *registry.Registry, path string) ([]predictor.Candidate, error) {
	out := make([]predictor.Candidate, 0, len(docs))
	for i, cdoc := range docs {
		c, err := decodeCondition(cdoc.Condition, reg, fmt.Sprintf("%s[%d].condition", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, predictor.Candidate{Condition: c, Table: cdoc.Table})
	}
	return out, nil
}
