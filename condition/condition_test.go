package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/condition"
	"github.com/GabrielRStella/QORA/wstate"
)

func TestConditionStateSizeIsProductOfGroups(t *testing.T) {
	g1 := condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)},
	)
	g2 := condition.NewRelationGroup(2,
		condition.Predicate{AttributeID: 1, IsTarget: true, Value: attrval.New(1)},
	)
	c := condition.NewCondition(g1, g2)
	assert.Equal(t, g1.CompleteStateSize()*g2.CompleteStateSize(), c.StateSize())
}

func TestNewConditionMergesGroupsSharingOtherClass(t *testing.T) {
	g1 := condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)},
	)
	g2 := condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 1, IsTarget: true, Value: attrval.New(1)},
	)
	c := condition.NewCondition(g1, g2)
	// g1 and g2 both NoOtherClass -> merged into ONE group since they share
	// OtherClassID.
	assert.Equal(t, 1, len(c.Groups))
}

func TestConditionAddMergesGroupsByOtherClass(t *testing.T) {
	a := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	b := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 1, IsTarget: true, Value: attrval.New(2)}))

	merged := a.Add(b)
	assert.Equal(t, 1, len(merged.Groups))
	assert.Equal(t, 2, merged.Groups[0].Size())
}

func TestConditionAddKeepsDistinctOtherClassesSeparate(t *testing.T) {
	a := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	b := condition.NewCondition(condition.NewRelationGroup(3,
		condition.Predicate{AttributeID: 1, IsTarget: true, Value: attrval.New(2)}))

	merged := a.Add(b)
	assert.Equal(t, 2, len(merged.Groups))
}

func TestConditionEvaluateRelational(t *testing.T) {
	target := obj(1, 0, map[int]int32{0: 5})
	other1 := obj(2, 1, map[int]int32{0: 5})
	objectsByClass := map[int][]wstate.Object{2: {other1}}

	c := condition.NewCondition(condition.NewRelationGroup(2,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(5)},
	))
	result := c.Evaluate(target, objectsByClass)
	assert.Less(t, result, c.StateSize())
}

func TestConditionKeyDistinguishes(t *testing.T) {
	a := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	b := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(2)}))
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestConditionEqualAndCompareTo(t *testing.T) {
	a := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	b := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	assert.True(t, a.Equal(b))
	assert.Zero(t, a.CompareTo(b))
}

func TestConditionCaseInfoDoesNotPanic(t *testing.T) {
	c := condition.NewCondition(condition.NewRelationGroup(condition.NoOtherClass,
		condition.Predicate{AttributeID: 0, IsTarget: true, Value: attrval.New(1)}))
	assert.NotPanics(t, func() { c.CaseInfo(0) })
}
