package persist_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/persist"
	"github.com/GabrielRStella/QORA/qora"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/statedist"
	"github.com/GabrielRStella/QORA/wstate"
)

// gridRegistry builds the relational test world's registry: player and
// wall classes sharing a width-2 "pos" attribute, standard actions.
func gridRegistry(t *testing.T) (*registry.Registry, int, int, int) {
	t.Helper()
	reg := registry.New()
	attrPos, err := reg.AddAttributeType("pos", 2)
	require.NoError(t, err)
	player, err := reg.AddObjectClass("player")
	require.NoError(t, err)
	require.NoError(t, reg.AddAttributeToClass(player, attrPos))
	wall, err := reg.AddObjectClass("wall")
	require.NoError(t, err)
	require.NoError(t, reg.AddAttributeToClass(wall, attrPos))
	require.NoError(t, reg.AddStandardActions())
	return reg, attrPos, player, wall
}

func gridState(t *testing.T, player, wall, attrPos int, pos attrval.Value) wstate.State {
	t.Helper()
	s := wstate.NewState()
	require.NoError(t, s.AddObject(wstate.New(player, 0, map[int]attrval.Value{attrPos: pos})))
	for y := int32(0); y < 5; y++ {
		require.NoError(t, s.AddObject(wstate.New(wall, int(y)+1, map[int]attrval.Value{attrPos: attrval.New(2, y)})))
	}
	return s
}

// gridStep applies MOVE_RIGHT's ground truth: blocked at x=1.
func gridStep(t *testing.T, player, wall, attrPos int, pos attrval.Value) (wstate.State, wstate.State) {
	t.Helper()
	prev := gridState(t, player, wall, attrPos, pos)
	next := pos
	if pos.Get(0) != 1 {
		next = pos.Add(attrval.New(1, 0))
	}
	return prev, gridState(t, player, wall, attrPos, next)
}

func gridPositions() []attrval.Value {
	var out []attrval.Value
	for _, x := range []int32{0, 1, 3, 4} {
		for y := int32(0); y < 5; y++ {
			out = append(out, attrval.New(x, y))
		}
	}
	return out
}

func TestRegistryRoundTrip(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)

	data, err := persist.EncodeRegistry(reg)
	require.NoError(t, err)
	decoded, err := persist.DecodeRegistry(data)
	require.NoError(t, err)

	at, err := decoded.AttributeTypeByName("pos")
	require.NoError(t, err)
	assert.Equal(t, attrPos, at.ID)
	assert.Equal(t, 2, at.Width)

	for name, id := range map[string]int{"player": player, "wall": wall} {
		cls, err := decoded.ObjectClassByName(name)
		require.NoError(t, err)
		assert.Equal(t, id, cls.ID)
		assert.True(t, cls.HasAttribute(at.ID))
	}

	a, err := decoded.ActionByName("MOVE_RIGHT")
	require.NoError(t, err)
	assert.Equal(t, registry.ActionMoveRight, a.ID)
}

func TestStateRoundTrip(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	s := gridState(t, player, wall, attrPos, attrval.New(3, 1))

	data, err := persist.EncodeState(s, reg)
	require.NoError(t, err)
	decoded, err := persist.DecodeState(data, reg)
	require.NoError(t, err)

	assert.True(t, decoded.Equal(s))
	assert.Equal(t, s.NextObjectID, decoded.NextObjectID)
}

func TestStateDecodesByNameIntoReorderedRegistry(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	s := gridState(t, player, wall, attrPos, attrval.New(0, 0))
	data, err := persist.EncodeState(s, reg)
	require.NoError(t, err)

	// same names, reversed class registration order: ids differ, names
	// carry the meaning.
	reg2 := registry.New()
	attrPos2, err := reg2.AddAttributeType("pos", 2)
	require.NoError(t, err)
	wall2, err := reg2.AddObjectClass("wall")
	require.NoError(t, err)
	require.NoError(t, reg2.AddAttributeToClass(wall2, attrPos2))
	player2, err := reg2.AddObjectClass("player")
	require.NoError(t, err)
	require.NoError(t, reg2.AddAttributeToClass(player2, attrPos2))

	decoded, err := persist.DecodeState(data, reg2)
	require.NoError(t, err)
	obj, ok := decoded.GetObject(0)
	require.True(t, ok)
	assert.Equal(t, player2, obj.ClassID)
	v, ok := obj.Get(attrPos2)
	require.True(t, ok)
	assert.True(t, v.Equal(attrval.New(0, 0)))
}

func TestDecodeStateUnknownClassCarriesFieldPath(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	s := gridState(t, player, wall, attrPos, attrval.New(0, 0))
	data, err := persist.EncodeState(s, reg)
	require.NoError(t, err)

	_, err = persist.DecodeState(data, registry.New())
	require.ErrorIs(t, err, persist.ErrUnknownName)
	assert.Contains(t, err.Error(), "objects[0].class")
}

func trainGrid(t *testing.T, l *qora.Learner, player, wall, attrPos int, positions []attrval.Value, rng *rand.Rand, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		prev, next := gridStep(t, player, wall, attrPos, positions[rng.Intn(len(positions))])
		require.NoError(t, l.ObserveTransition(prev, registry.ActionMoveRight, next))
	}
}

func requireSameStateDistribution(t *testing.T, a, b statedist.StateDistribution) {
	t.Helper()
	require.Equal(t, len(a.Objects), len(b.Objects))
	for id, da := range a.Objects {
		db, ok := b.Objects[id]
		require.True(t, ok, "object %d missing", id)
		require.Equal(t, da.Size(), db.Size(), "object %d support size", id)
		for _, v := range da.Values() {
			assert.InDelta(t, da.GetProbability(v), db.GetProbability(v), 1e-12,
				"object %d value %s", id, v.Key())
		}
	}
}

func TestLearnerRoundTripPredictsIdentically(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	l := qora.New(reg, 0.05, qora.Options{})
	positions := gridPositions()
	trainGrid(t, l, player, wall, attrPos, positions, rand.New(rand.NewSource(11)), 300)

	domain := persist.DomainDocument{Name: "gridwalls", Parameters: map[string]any{"size": 5.0}}
	data, err := persist.EncodeLearner(l, reg, domain)
	require.NoError(t, err)

	reg2, attrPos2, player2, wall2 := gridRegistry(t)
	decoded, decodedDomain, err := persist.DecodeLearner(data, reg2, qora.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.Name, decodedDomain.Name)
	assert.Equal(t, l.Alpha(), decoded.Alpha())
	assert.Equal(t, l.Observations(), decoded.Observations())

	for _, pos := range positions {
		got, err := decoded.PredictTransition(gridState(t, player2, wall2, attrPos2, pos), registry.ActionMoveRight, nil)
		require.NoError(t, err)
		want, err := l.PredictTransition(gridState(t, player, wall, attrPos, pos), registry.ActionMoveRight, nil)
		require.NoError(t, err)
		requireSameStateDistribution(t, want, got)
	}
}

// Training, persisting mid-stream, and resuming on both sides of the
// round trip must land both learners in structurally identical states.
func TestLearnerContinuedTrainingMatches(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	positions := gridPositions()

	// one shared position stream so both learners see identical data.
	streamRng := rand.New(rand.NewSource(23))
	var stream []attrval.Value
	for i := 0; i < 500; i++ {
		stream = append(stream, positions[streamRng.Intn(len(positions))])
	}

	l := qora.New(reg, 0.05, qora.Options{})
	for _, pos := range stream[:200] {
		prev, next := gridStep(t, player, wall, attrPos, pos)
		require.NoError(t, l.ObserveTransition(prev, registry.ActionMoveRight, next))
	}

	data, err := persist.EncodeLearner(l, reg, persist.DomainDocument{})
	require.NoError(t, err)
	reg2, attrPos2, player2, wall2 := gridRegistry(t)
	decoded, _, err := persist.DecodeLearner(data, reg2, qora.Options{})
	require.NoError(t, err)

	for _, pos := range stream[200:] {
		prev, next := gridStep(t, player, wall, attrPos, pos)
		require.NoError(t, l.ObserveTransition(prev, registry.ActionMoveRight, next))
		prev2, next2 := gridStep(t, player2, wall2, attrPos2, pos)
		require.NoError(t, decoded.ObserveTransition(prev2, registry.ActionMoveRight, next2))
	}

	var want, got bytes.Buffer
	l.Print(&want)
	decoded.Print(&got)
	assert.Equal(t, want.String(), got.String())
}

func TestDecodeLearnerRejectsWrongName(t *testing.T) {
	reg, _, _, _ := gridRegistry(t)
	_, _, err := persist.DecodeLearner([]byte(`{"name":"oracle","parameters":{"alpha":0.05}}`), reg, qora.Options{})
	assert.ErrorIs(t, err, persist.ErrWrongLearner)
}

func TestDecodeLearnerRejectsBadAlpha(t *testing.T) {
	reg, _, _, _ := gridRegistry(t)
	_, _, err := persist.DecodeLearner([]byte(`{"name":"qora","parameters":{"alpha":2}}`), reg, qora.Options{})
	require.ErrorIs(t, err, persist.ErrDecode)
	assert.Contains(t, err.Error(), "parameters.alpha")
}

func TestDecodeLearnerUnknownActionCarriesFieldPath(t *testing.T) {
	reg, attrPos, player, wall := gridRegistry(t)
	l := qora.New(reg, 0.05, qora.Options{})
	trainGrid(t, l, player, wall, attrPos, gridPositions(), rand.New(rand.NewSource(5)), 10)
	data, err := persist.EncodeLearner(l, reg, persist.DomainDocument{})
	require.NoError(t, err)

	// a registry with the classes but no actions: the action name in the
	// document cannot resolve.
	bare := registry.New()
	_, err = bare.AddAttributeType("pos", 2)
	require.NoError(t, err)
	p, err := bare.AddObjectClass("player")
	require.NoError(t, err)
	require.NoError(t, bare.AddAttributeToClass(p, 0))
	w, err := bare.AddObjectClass("wall")
	require.NoError(t, err)
	require.NoError(t, bare.AddAttributeToClass(w, 0))

	_, _, err = persist.DecodeLearner(data, bare, qora.Options{})
	require.ErrorIs(t, err, persist.ErrUnknownName)
	assert.Contains(t, err.Error(), "model.effects[0].action")
}

func TestDecodeLearnerMalformedJSON(t *testing.T) {
	reg, _, _, _ := gridRegistry(t)
	_, _, err := persist.DecodeLearner([]byte(`{`), reg, qora.Options{})
	assert.ErrorIs(t, err, persist.ErrDecode)
}
