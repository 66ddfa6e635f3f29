package entities

import (
	"fmt"
	"slices"
	"sort"
)

// ModelID identifies a product model
type ModelID string

// Family is the measurement principle of a model
type Family int

const (
	FamilyGauge Family = iota
	FamilyAbsolute
	FamilyDifferential
)

// String method for Family enum
func (f Family) String() string {
	switch f {
	case FamilyGauge:
		return "gauge"
	case FamilyAbsolute:
		return "absolute"
	case FamilyDifferential:
		return "differential"
	default:
		return "unknown"
	}
}

// ParseFamily converts a family name into a Family
func ParseFamily(s string) (Family, bool) {
	switch s {
	case "gauge":
		return FamilyGauge, true
	case "absolute":
		return FamilyAbsolute, true
	case "differential":
		return FamilyDifferential, true
	default:
		return 0, false
	}
}

// ThreadFamily is the conduit thread of a housing or electrical connector
type ThreadFamily int

const (
	ThreadUnknown ThreadFamily = iota
	ThreadM20
	ThreadNPT
)

// String method for ThreadFamily enum
func (t ThreadFamily) String() string {
	switch t {
	case ThreadM20:
		return "M20"
	case ThreadNPT:
		return "NPT"
	default:
		return "unknown"
	}
}

// RuleSet parameterises the compatibility rules for one model
type RuleSet struct {
	M20Housings []OptionCode
	NPTHousings []OptionCode

	M20Connectors               []OptionCode
	NPTConnectors               []OptionCode
	NonExplosionProofConnectors []OptionCode
	ExplosionProofCertificates  []OptionCode

	ManifoldNone     OptionCode
	AllowedManifolds []OptionCode
	ManifoldTypeTags map[OptionCode]string

	WeldNeckNone      OptionCode
	WeldNeckSupported bool
	MaleWeldNecks     []OptionCode
	FemaleWeldNecks   []OptionCode

	MaleProcessConnections   []OptionCode
	FemaleProcessConnections []OptionCode
}

// HousingThread classifies a housing code
func (r RuleSet) HousingThread(code OptionCode) ThreadFamily {
	switch {
	case slices.Contains(r.M20Housings, code):
		return ThreadM20
	case slices.Contains(r.NPTHousings, code):
		return ThreadNPT
	default:
		return ThreadUnknown
	}
}

// ConnectorThread classifies an electrical connector code
func (r RuleSet) ConnectorThread(code OptionCode) ThreadFamily {
	switch {
	case slices.Contains(r.M20Connectors, code):
		return ThreadM20
	case slices.Contains(r.NPTConnectors, code):
		return ThreadNPT
	default:
		return ThreadUnknown
	}
}

// IsRealManifold reports whether code is a manifold other than "none"
func (r RuleSet) IsRealManifold(code OptionCode) bool {
	return code != "" && code != r.ManifoldNone
}

// IsRealWeldNeck reports whether code is a weld neck other than "none"
func (r RuleSet) IsRealWeldNeck(code OptionCode) bool {
	return code != "" && code != r.WeldNeckNone
}

// ProductModel is one configurable transmitter model
type ProductModel struct {
	ID          ModelID
	Name        string
	BaseCode    string
	Description string
	Family      Family
	Categories  []*Category
	Rules       RuleSet

	index map[CategoryID]*Category
}

// NewProductModel creates a validated ProductModel with categories ordered by sequence
func NewProductModel(id ModelID, name, baseCode string, family Family, categories []*Category, rules RuleSet) (*ProductModel, error) {
	if id == "" {
		return nil, fmt.Errorf("model id cannot be empty")
	}
	if baseCode == "" {
		return nil, fmt.Errorf("model %s: base code cannot be empty", id)
	}

	index := make(map[CategoryID]*Category, len(categories))
	for _, c := range categories {
		if _, exists := index[c.ID]; exists {
			return nil, fmt.Errorf("model %s: duplicate category %s", id, c.ID)
		}
		index[c.ID] = c
	}

	ordered := make([]*Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	return &ProductModel{
		ID:         id,
		Name:       name,
		BaseCode:   baseCode,
		Family:     family,
		Categories: ordered,
		Rules:      rules,
		index:      index,
	}, nil
}

// Category looks up a category by id
func (m *ProductModel) Category(id CategoryID) (*Category, bool) {
	if m.index == nil {
		for _, c := range m.Categories {
			if c.ID == id {
				return c, true
			}
		}
		return nil, false
	}
	c, ok := m.index[id]
	return c, ok
}

// CategoriesByPart returns the categories of one part in sequence order
func (m *ProductModel) CategoriesByPart(part Part) []*Category {
	var out []*Category
	for _, c := range m.Categories {
		if c.Part == part {
			out = append(out, c)
		}
	}
	return out
}

// HasManifold reports whether the model offers a manifold accessory
func (m *ProductModel) HasManifold() bool {
	_, ok := m.Category(CategoryManifold)
	return ok
}

// SupportsManifoldAndWeldNeck reports whether manifold and weld neck
// exclude each other on this model
func (m *ProductModel) SupportsManifoldAndWeldNeck() bool {
	_, ok := m.Category(CategoryWeldNeck)
	return ok && m.HasManifold() && m.Rules.WeldNeckSupported
}

// RangeOption resolves the selected pressure-range option
func (m *ProductModel) RangeOption(sel Selections) (*RangeOption, bool) {
	code, ok := sel[CategoryRange]
	if !ok {
		return nil, false
	}
	c, ok := m.Category(CategoryRange)
	if !ok {
		return nil, false
	}
	opt, ok := c.Option(code)
	if !ok {
		return nil, false
	}
	switch o := opt.(type) {
	case RangeOption:
		return &o, true
	case *RangeOption:
		return o, true
	default:
		return nil, false
	}
}
