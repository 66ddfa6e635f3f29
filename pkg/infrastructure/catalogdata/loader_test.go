package catalogdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

func TestDefault_LoadsAllModels(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 3, catalog.Version)
	require.Len(t, catalog.Models, 3)

	byID := map[entities.ModelID]*entities.ProductModel{}
	for _, m := range catalog.Models {
		byID[m.ID] = m
	}

	dp := byID["dp"]
	require.NotNil(t, dp)
	assert.Equal(t, "SS-3051D", dp.BaseCode)
	assert.Equal(t, entities.FamilyDifferential, dp.Family)
	assert.Equal(t, []entities.OptionCode{"V3", "V3C", "V5"}, dp.Rules.AllowedManifolds)
	assert.True(t, dp.Rules.WeldNeckSupported)

	ap := byID["ap"]
	require.NotNil(t, ap)
	assert.False(t, ap.Rules.WeldNeckSupported)
	assert.Equal(t, entities.OptionCode("V0"), ap.Rules.ManifoldNone, "merged from the shared rule set")
}

func TestDefault_CategoriesInSequenceOrder(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	for _, m := range catalog.Models {
		for i := 1; i < len(m.Categories); i++ {
			assert.Less(t, m.Categories[i-1].Sequence, m.Categories[i].Sequence, "model %s", m.ID)
		}
		required := m.CategoriesByPart(entities.PartRequired)
		require.NotEmpty(t, required)
		assert.Equal(t, entities.CategoryRange, required[0].ID)
	}
}

func TestDefault_RangeOptionsCarryBounds(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	var ap *entities.ProductModel
	for _, m := range catalog.Models {
		if m.ID == "ap" {
			ap = m
		}
	}
	require.NotNil(t, ap)

	opt, ok := ap.RangeOption(entities.Selections{entities.CategoryRange: "1"})
	require.True(t, ok)
	assert.Equal(t, 0.0, opt.Min)
	assert.Equal(t, 40.0, opt.Max)
	assert.Equal(t, 10.0, opt.MinSpan)
	assert.Equal(t, "kPa", opt.Unit)
}

func TestParse_Rejects(t *testing.T) {
	testCases := []struct {
		name        string
		yaml        string
		expectError string
	}{
		{"malformed yaml", "models: [", "failed to decode catalog YAML"},
		{"unknown field", "version: 1\nbogus: true\nmodels: []", "failed to decode catalog YAML"},
		{"no models", "version: 1\nmodels: []", "catalog schema validation failed"},
		{
			"lowercase option code",
			`version: 1
models:
  - id: x
    name: X
    base_code: SS-1
    family: gauge
    rules: {manifold_none: V0, weld_neck_none: W0}
    categories:
      - id: range
        title: Range
        part: required
        sequence: 10
        options:
          - {code: "a", description: "bad", min: 0, max: 1, unit: kPa, min_span: 0.1}
`,
			"catalog schema validation failed",
		},
		{
			"range with inverted bounds",
			`version: 1
models:
  - id: x
    name: X
    base_code: SS-1
    family: gauge
    rules: {manifold_none: V0, weld_neck_none: W0}
    categories:
      - id: range
        title: Range
        part: required
        sequence: 10
        options:
          - {code: "1", description: "bad", min: 5, max: 1, unit: kPa, min_span: 0.1}
`,
			"min 5 must be below max 1",
		},
		{
			"missing range category",
			`version: 1
models:
  - id: x
    name: X
    base_code: SS-1
    family: gauge
    rules: {manifold_none: V0, weld_neck_none: W0}
    categories:
      - id: display
        title: Display
        part: additional
        sequence: 10
        options:
          - {code: L0, description: "none"}
`,
			"pressure range category missing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, embedded, 0o644))

	catalog, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Models, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open catalog file")
}
