package persist

import (
	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/stats"
)

// LearnerDocument is the persisted form of a trained learner.
type LearnerDocument struct {
	Name         string             `json:"name"`
	Parameters   ParametersDocument `json:"parameters"`
	Domain       DomainDocument     `json:"domain"`
	Observations int                `json:"observations"`
	Model        ModelDocument      `json:"model"`
}

// ParametersDocument carries the learner's construction parameters.
type ParametersDocument struct {
	Alpha float64 `json:"alpha"`
}

// DomainDocument names the environment the learner was trained against.
// The core never interprets it; it travels with the document so a driver
// can re-create the matching environment on load.
type DomainDocument struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ModelDocument is the learned state proper.
type ModelDocument struct {
	Effects    []EffectListDocument     `json:"effects"`
	Predictors []PredictorEntryDocument `json:"predictors"`
}

// EffectTypeDocument names a (class, attribute) pair.
type EffectTypeDocument struct {
	ObjectType    string `json:"object_type"`
	AttributeType string `json:"attribute_type"`
}

// EffectListDocument is one slot's observed effect set, in first-seen
// order.
type EffectListDocument struct {
	EffectType EffectTypeDocument `json:"effect_type"`
	Action     string             `json:"action"`
	Effects    []attrval.Value    `json:"effects"`
}

// PredictorEntryDocument is one stochastic slot's predictor.
type PredictorEntryDocument struct {
	EffectType EffectTypeDocument `json:"effect_type"`
	Action     string             `json:"action"`
	Predictor  PredictorDocument  `json:"predictor"`
}

// PredictorDocument is the persisted form of a StochasticEffectPredictor.
type PredictorDocument struct {
	Observed   []ConditionDocument  `json:"observed"`
	Current    []CandidateDocument  `json:"current"`
	Hypotheses []CandidateDocument  `json:"hypotheses"`
	Baseline   stats.FrequencyTable `json:"baseline"`
	Effects    []attrval.Value      `json:"effects"`
}

// CandidateDocument pairs a condition with its frequency table.
type CandidateDocument struct {
	Condition ConditionDocument    `json:"condition"`
	Table     stats.FrequencyTable `json:"table"`
}

// ConditionDocument is a condition's relation groups, in canonical order.
type ConditionDocument struct {
	Groups []RelationGroupDocument `json:"groups"`
}

// RelationGroupDocument is one relation group. OtherClass is nil for a
// target-only group.
type RelationGroupDocument struct {
	OtherClass *string             `json:"other_class"`
	Predicates []PredicateDocument `json:"predicates"`
}

// PredicateDocument is a single predicate, attribute named by type name.
type PredicateDocument struct {
	Attribute  string        `json:"attribute"`
	IsRelative bool          `json:"is_relative"`
	IsTarget   bool          `json:"is_target"`
	Value      attrval.Value `json:"value"`
}

// RegistryDocument is the persisted form of a type registry. Order
// matters: ids are re-assigned densely in document order on decode.
type RegistryDocument struct {
	AttributeTypes []AttributeTypeDocument `json:"attribute_types"`
	ObjectClasses  []ObjectClassDocument   `json:"object_classes"`
	Actions        []string                `json:"actions"`
}

// AttributeTypeDocument is one named, fixed-width attribute type.
type AttributeTypeDocument struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

// ObjectClassDocument is one object class and its attribute-type names.
type ObjectClassDocument struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

// StateDocument is the persisted form of a world state.
type StateDocument struct {
	NextObjectID int              `json:"next_object_id"`
	Objects      []ObjectDocument `json:"objects"`
}

// ObjectDocument is one object, class named, attributes keyed by
// attribute-type name.
type ObjectDocument struct {
	ID         int                      `json:"id"`
	Class      string                   `json:"class"`
	Attributes map[string]attrval.Value `json:"attributes"`
}
