package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
	testinghelpers "github.com/vsinha/ptconfig/pkg/infrastructure/testing"
)

func withSpectrum(sel entities.Selections) entities.Selections {
	next := sel.Clone()
	next[entities.CategoryManifoldProcess] = "K1"
	next[entities.CategoryManifoldMaterial] = "S1"
	next[entities.CategoryManifoldMisc] = "Y0"
	return next
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	m := testinghelpers.Model("dp")
	sel := entities.Selections{entities.CategoryHousing: "A"}

	next := Apply(m, sel, entities.CategoryDisplay, "L1")

	assert.Equal(t, entities.Selections{entities.CategoryHousing: "A"}, sel)
	assert.Equal(t, entities.OptionCode("L1"), next[entities.CategoryDisplay])
}

func TestApply_ManifoldAndWeldNeckExclusive(t *testing.T) {
	m := testinghelpers.Model("dp")

	testCases := []struct {
		name   string
		start  entities.Selections
		id     entities.CategoryID
		code   entities.OptionCode
		expect entities.Selections
	}{
		{
			"real manifold resets weld neck",
			entities.Selections{entities.CategoryWeldNeck: "WM1"},
			entities.CategoryManifold, "V3",
			entities.Selections{entities.CategoryManifold: "V3", entities.CategoryWeldNeck: "W0"},
		},
		{
			"real weld neck resets manifold and spectrum",
			withSpectrum(entities.Selections{entities.CategoryManifold: "V5"}),
			entities.CategoryWeldNeck, "WF1",
			entities.Selections{entities.CategoryManifold: "V0", entities.CategoryWeldNeck: "WF1"},
		},
		{
			"manifold none clears spectrum",
			withSpectrum(entities.Selections{entities.CategoryManifold: "V3"}),
			entities.CategoryManifold, "V0",
			entities.Selections{entities.CategoryManifold: "V0"},
		},
		{
			"weld neck none leaves manifold alone",
			withSpectrum(entities.Selections{entities.CategoryManifold: "V3"}),
			entities.CategoryWeldNeck, "W0",
			withSpectrum(entities.Selections{entities.CategoryManifold: "V3", entities.CategoryWeldNeck: "W0"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Apply(m, tc.start, tc.id, tc.code))
		})
	}
}

func TestApply_NoCascadeWithoutWeldNeckSupport(t *testing.T) {
	m := testinghelpers.Model("ap")

	next := Apply(m, entities.Selections{entities.CategoryWeldNeck: "W0"}, entities.CategoryManifold, "V2")
	assert.Equal(t, entities.Selections{entities.CategoryManifold: "V2", entities.CategoryWeldNeck: "W0"}, next)
}

func TestApply_ExclusivityHoldsOverAnySequence(t *testing.T) {
	m := testinghelpers.Model("gp")
	steps := []struct {
		id   entities.CategoryID
		code entities.OptionCode
	}{
		{entities.CategoryManifold, "V2"},
		{entities.CategoryManifoldProcess, "K2"},
		{entities.CategoryWeldNeck, "WF2"},
		{entities.CategoryManifold, "V2T"},
		{entities.CategoryWeldNeck, "WM1"},
		{entities.CategoryManifold, "V0"},
		{entities.CategoryWeldNeck, "W0"},
	}

	sel := entities.Selections{}
	for _, step := range steps {
		sel = Apply(m, sel, step.id, step.code)
		realManifold := m.Rules.IsRealManifold(sel[entities.CategoryManifold])
		realWeldNeck := m.Rules.IsRealWeldNeck(sel[entities.CategoryWeldNeck])
		assert.False(t, realManifold && realWeldNeck, "both set after %s=%s: %s", step.id, step.code, sel)
		if !realManifold {
			assert.Empty(t, sel.Restrict(m, entities.PartManifold), "spectrum left without manifold after %s=%s", step.id, step.code)
		}
	}
}

func TestClear(t *testing.T) {
	m := testinghelpers.Model("dp")
	sel := withSpectrum(entities.Selections{entities.CategoryManifold: "V3", entities.CategoryDisplay: "L1"})

	assert.Equal(t, entities.Selections{entities.CategoryDisplay: "L1"}, Clear(m, sel, entities.CategoryManifold))
	assert.NotContains(t, Clear(m, sel, entities.CategoryDisplay), entities.CategoryDisplay)
	assert.Equal(t, entities.OptionCode("V3"), sel[entities.CategoryManifold], "input untouched")
}

func TestRangeChanged(t *testing.T) {
	a := entities.Selections{entities.CategoryRange: "1"}
	b := entities.Selections{entities.CategoryRange: "2"}

	assert.True(t, RangeChanged(a, b))
	assert.True(t, RangeChanged(a, entities.Selections{}))
	assert.False(t, RangeChanged(a, a.Clone()))
	assert.False(t, RangeChanged(entities.Selections{}, entities.Selections{entities.CategoryDisplay: "L1"}))
}
