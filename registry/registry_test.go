package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielRStella/QORA/registry"
)

func TestAddAttributeType(t *testing.T) {
	r := registry.New()
	id, err := r.AddAttributeType("position", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	at, err := r.AttributeType(id)
	require.NoError(t, err)
	assert.Equal(t, "position", at.Name)
	assert.Equal(t, 2, at.Width)

	byName, err := r.AttributeTypeByName("position")
	require.NoError(t, err)
	assert.Equal(t, at, byName)
}

func TestAddAttributeTypeDuplicateName(t *testing.T) {
	r := registry.New()
	_, err := r.AddAttributeType("position", 2)
	require.NoError(t, err)
	_, err = r.AddAttributeType("position", 3)
	assert.ErrorIs(t, err, registry.ErrDuplicateName)
}

func TestAddObjectClassAndAttribute(t *testing.T) {
	r := registry.New()
	attrID, err := r.AddAttributeType("health", 1)
	require.NoError(t, err)
	classID, err := r.AddObjectClass("player")
	require.NoError(t, err)

	require.NoError(t, r.AddAttributeToClass(classID, attrID))
	err = r.AddAttributeToClass(classID, attrID)
	assert.ErrorIs(t, err, registry.ErrAttributeAlreadyInClass)

	cls, err := r.ObjectClass(classID)
	require.NoError(t, err)
	assert.Equal(t, []int{attrID}, cls.AttributeIDs)
}

func TestAddAttributeToClassUnknownIDs(t *testing.T) {
	r := registry.New()
	classID, err := r.AddObjectClass("player")
	require.NoError(t, err)
	assert.ErrorIs(t, r.AddAttributeToClass(classID, 42), registry.ErrUnknownID)
	assert.ErrorIs(t, r.AddAttributeToClass(42, 0), registry.ErrUnknownID)
}

func TestNewActionAndLookup(t *testing.T) {
	r := registry.New()
	id, err := r.NewAction("JUMP")
	require.NoError(t, err)
	act, err := r.Action(id)
	require.NoError(t, err)
	assert.Equal(t, "JUMP", act.Name)

	byName, err := r.ActionByName("JUMP")
	require.NoError(t, err)
	assert.Equal(t, act, byName)
}

func TestAddStandardActions(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.AddStandardActions())

	noop, err := r.Action(registry.ActionNoop)
	require.NoError(t, err)
	assert.Equal(t, "NOOP", noop.Name)

	up, err := r.Action(registry.ActionMoveUp)
	require.NoError(t, err)
	assert.Equal(t, "MOVE_UP", up.Name)
}

func TestAddStandardActionsOnlyOnce(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.AddStandardActions())
	assert.ErrorIs(t, r.AddStandardActions(), registry.ErrStandardActionsAlreadyAdded)
}

func TestAddStandardActionsRequiresEmptyActionTable(t *testing.T) {
	r := registry.New()
	_, err := r.NewAction("CUSTOM")
	require.NoError(t, err)
	assert.ErrorIs(t, r.AddStandardActions(), registry.ErrStandardActionsAlreadyAdded)
}

func TestCreateObjectMaterializesZeroAttributes(t *testing.T) {
	r := registry.New()
	posID, err := r.AddAttributeType("position", 2)
	require.NoError(t, err)
	healthID, err := r.AddAttributeType("health", 1)
	require.NoError(t, err)
	classID, err := r.AddObjectClass("player")
	require.NoError(t, err)
	require.NoError(t, r.AddAttributeToClass(classID, posID))
	require.NoError(t, r.AddAttributeToClass(classID, healthID))

	obj, err := r.CreateObject(classID, 7)
	require.NoError(t, err)
	assert.Equal(t, classID, obj.ClassID)
	assert.Equal(t, 7, obj.ObjectID)

	pos, ok := obj.Get(posID)
	require.True(t, ok)
	assert.Equal(t, 0, pos.Length())
	assert.Equal(t, 2, pos.Width())

	health, ok := obj.Get(healthID)
	require.True(t, ok)
	assert.Equal(t, 1, health.Width())
}

func TestCreateObjectUnknownClass(t *testing.T) {
	r := registry.New()
	_, err := r.CreateObject(99, 0)
	assert.ErrorIs(t, err, registry.ErrUnknownID)
}

func TestUnknownLookups(t *testing.T) {
	r := registry.New()
	_, err := r.AttributeType(0)
	assert.ErrorIs(t, err, registry.ErrUnknownID)
	_, err = r.AttributeTypeByName("nope")
	assert.ErrorIs(t, err, registry.ErrUnknownName)
	_, err = r.ObjectClassByName("nope")
	assert.ErrorIs(t, err, registry.ErrUnknownName)
	_, err = r.ActionByName("nope")
	assert.ErrorIs(t, err, registry.ErrUnknownName)
}
