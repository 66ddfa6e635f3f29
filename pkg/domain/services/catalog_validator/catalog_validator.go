package catalog_validator

import (
	"fmt"
	"strings"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	DuplicateModels  []entities.ModelID
	DuplicateCodes   []string
	DanglingRuleRefs []string
	Errors           []string
}

// ValidateCatalog performs integrity checks across all product models
func ValidateCatalog(models []*entities.ProductModel) *ValidationResult {
	result := &ValidationResult{
		DuplicateModels:  make([]entities.ModelID, 0),
		DuplicateCodes:   make([]string, 0),
		DanglingRuleRefs: make([]string, 0),
		Errors:           make([]string, 0),
	}

	seenIDs := make(map[entities.ModelID]bool)
	seenBase := make(map[string]entities.ModelID)
	for _, m := range models {
		if seenIDs[m.ID] {
			result.DuplicateModels = append(result.DuplicateModels, m.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate model id: %s", m.ID))
		}
		seenIDs[m.ID] = true

		for _, prefix := range []string{m.BaseCode, strings.ReplaceAll(m.BaseCode, "-", "")} {
			if other, exists := seenBase[prefix]; exists && other != m.ID {
				result.Errors = append(result.Errors,
					fmt.Sprintf("models %s and %s share base code %s", other, m.ID, prefix))
			}
			seenBase[prefix] = m.ID
		}

		validateModel(m, result)
	}

	return result
}

func validateModel(m *entities.ProductModel, result *ValidationResult) {
	sequences := make(map[int]entities.CategoryID)
	for _, c := range m.Categories {
		if other, exists := sequences[c.Sequence]; exists {
			result.Errors = append(result.Errors,
				fmt.Sprintf("model %s: categories %s and %s share sequence %d", m.ID, other, c.ID, c.Sequence))
		}
		sequences[c.Sequence] = c.ID

		codes := make(map[entities.OptionCode]bool)
		for _, opt := range c.Options {
			code := opt.OptionCode()
			if code == "" {
				result.Errors = append(result.Errors,
					fmt.Sprintf("model %s: category %s has an option without code", m.ID, c.ID))
				continue
			}
			if codes[code] {
				dup := fmt.Sprintf("%s/%s/%s", m.ID, c.ID, code)
				result.DuplicateCodes = append(result.DuplicateCodes, dup)
				result.Errors = append(result.Errors, fmt.Sprintf("duplicate option code: %s", dup))
			}
			codes[code] = true
		}
	}

	validateRangeCategory(m, result)
	validateRuleRefs(m, result)

	if m.HasManifold() {
		for _, id := range entities.ManifoldSpectrumOrder {
			c, ok := m.Category(id)
			if !ok {
				result.Errors = append(result.Errors,
					fmt.Sprintf("model %s: manifold category %s missing", m.ID, id))
				continue
			}
			if c.Part != entities.PartManifold {
				result.Errors = append(result.Errors,
					fmt.Sprintf("model %s: category %s must be part of the manifold spectrum", m.ID, id))
			}
		}
		for _, code := range m.Rules.AllowedManifolds {
			if _, ok := m.Rules.ManifoldTypeTags[code]; !ok {
				result.Errors = append(result.Errors,
					fmt.Sprintf("model %s: manifold %s has no type tag", m.ID, code))
			}
		}
	}
}

func validateRangeCategory(m *entities.ProductModel, result *ValidationResult) {
	c, ok := m.Category(entities.CategoryRange)
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("model %s: pressure range category missing", m.ID))
		return
	}
	if c.Part != entities.PartRequired {
		result.Errors = append(result.Errors, fmt.Sprintf("model %s: pressure range must be required", m.ID))
	}
	for _, opt := range c.Options {
		switch opt.(type) {
		case entities.RangeOption, *entities.RangeOption:
		default:
			result.Errors = append(result.Errors,
				fmt.Sprintf("model %s: range option %s has no bounds", m.ID, opt.OptionCode()))
		}
	}
}

type ruleRef struct {
	category entities.CategoryID
	codes    []entities.OptionCode
}

// validateRuleRefs checks that every code a rule set names exists in the
// category the rule reads it from
func validateRuleRefs(m *entities.ProductModel, result *ValidationResult) {
	r := m.Rules
	refs := []ruleRef{
		{entities.CategoryHousing, r.M20Housings},
		{entities.CategoryHousing, r.NPTHousings},
		{entities.CategoryConnector, r.M20Connectors},
		{entities.CategoryConnector, r.NPTConnectors},
		{entities.CategoryConnector, r.NonExplosionProofConnectors},
		{entities.CategoryExplosionProof, r.ExplosionProofCertificates},
		{entities.CategoryManifold, r.AllowedManifolds},
		{entities.CategoryWeldNeck, r.MaleWeldNecks},
		{entities.CategoryWeldNeck, r.FemaleWeldNecks},
		{entities.CategoryProcessConnection, r.MaleProcessConnections},
		{entities.CategoryProcessConnection, r.FemaleProcessConnections},
	}

	if m.HasManifold() {
		refs = append(refs, ruleRef{entities.CategoryManifold, []entities.OptionCode{r.ManifoldNone}})
	}
	if _, ok := m.Category(entities.CategoryWeldNeck); ok {
		refs = append(refs, ruleRef{entities.CategoryWeldNeck, []entities.OptionCode{r.WeldNeckNone}})
	}

	for _, ref := range refs {
		c, ok := m.Category(ref.category)
		for _, code := range ref.codes {
			if ok && c.HasOption(code) {
				continue
			}
			dangling := fmt.Sprintf("%s/%s/%s", m.ID, ref.category, code)
			result.DanglingRuleRefs = append(result.DanglingRuleRefs, dangling)
			result.Errors = append(result.Errors, fmt.Sprintf("rule references unknown option: %s", dangling))
		}
	}
}
