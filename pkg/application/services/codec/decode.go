package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

var (
	// ErrModelNotRecognized is returned when no model prefix matches the input
	ErrModelNotRecognized = errors.New("model not recognized")
	// ErrNotManifoldCode is returned when a manifold code lacks its prefix or type tag
	ErrNotManifoldCode = errors.New("not a manifold code")
)

// Normalize upper-cases raw, maps dash variants to '-' and strips whitespace
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case unicode.IsSpace(r):
		case r == '‐', r == '‑', r == '–', r == '—':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode parses a pasted order code into a model and selections. Only an
// unrecognized model is an error; anything else yields a partial result.
func (c *Codec) Decode(raw string) (*dto.DecodeResult, error) {
	code := Normalize(raw)

	m, prefix, err := c.detectModel(code)
	if err != nil {
		return nil, err
	}

	sel := make(entities.Selections)
	rest := strings.TrimLeft(code[len(prefix):], "-")

	result := &dto.DecodeResult{
		Model:      m,
		ModelID:    m.ID,
		Prefix:     prefix,
		Selections: sel,
	}

	rest, result.StoppedAt = decodeSequential(m.CategoriesByPart(entities.PartRequired), rest, sel)
	result.Remainder = decodeAnyOrder(m, rest, sel)

	return result, nil
}

// DecodeManifold parses a manifold model number for model m
func (c *Codec) DecodeManifold(m *entities.ProductModel, raw string) (*dto.ManifoldDecodeResult, error) {
	code := Normalize(raw)
	if !strings.HasPrefix(code, ManifoldPrefix) {
		return nil, fmt.Errorf("%w: missing %s prefix", ErrNotManifoldCode, ManifoldPrefix)
	}
	rest := code[len(ManifoldPrefix):]

	tag := ""
	for _, t := range m.Rules.ManifoldTypeTags {
		if strings.HasPrefix(rest, t) && len(t) > len(tag) {
			tag = t
		}
	}
	if tag == "" {
		return nil, fmt.Errorf("%w: unknown manifold type in %q", ErrNotManifoldCode, code)
	}
	rest = rest[len(tag):]

	categories := make([]*entities.Category, 0, len(entities.ManifoldSpectrumOrder))
	for _, id := range entities.ManifoldSpectrumOrder {
		if category, ok := m.Category(id); ok {
			categories = append(categories, category)
		}
	}

	sel := make(entities.Selections)
	rest, stopped := decodeSequential(categories, rest, sel)

	return &dto.ManifoldDecodeResult{
		TypeTag:    tag,
		Selections: sel,
		StoppedAt:  stopped,
		Remainder:  rest,
	}, nil
}

// detectModel picks the model whose base code, hyphenated or not, or whose
// unambiguous numeric model number, bare or with its letter suffix, is the
// longest prefix of code
func (c *Codec) detectModel(code string) (*entities.ProductModel, string, error) {
	models, err := c.catalog.GetAllModels()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list models: %w", err)
	}

	counts := make(map[string]int)
	for _, m := range models {
		base := strings.ToUpper(m.BaseCode)
		for _, p := range numericPrefixes(base) {
			counts[p]++
		}
	}

	var best *entities.ProductModel
	bestPrefix := ""
	for _, m := range models {
		base := strings.ToUpper(m.BaseCode)
		prefixes := []string{base, strings.ReplaceAll(base, "-", "")}
		for _, p := range numericPrefixes(base) {
			if counts[p] == 1 {
				prefixes = append(prefixes, p)
			}
		}

		for _, p := range prefixes {
			if strings.HasPrefix(code, p) && len(p) > len(bestPrefix) {
				best, bestPrefix = m, p
			}
		}
	}

	if best == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrModelNotRecognized, code)
	}
	return best, bestPrefix, nil
}

// numericPrefixes returns the bare model number of base and, when base
// continues after it, the model number with the rest of base, such as "2088"
// and "2088A" for "SS-2088A"
func numericPrefixes(base string) []string {
	n := modelNumber(base)
	if n == "" {
		return nil
	}
	tail := strings.ReplaceAll(base[strings.Index(base, n):], "-", "")
	if tail == n {
		return []string{n}
	}
	return []string{n, tail}
}

// modelNumber returns the first run of digits in a base code
func modelNumber(base string) string {
	start := strings.IndexFunc(base, unicode.IsDigit)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(base) && base[end] >= '0' && base[end] <= '9' {
		end++
	}
	return base[start:end]
}

// decodeSequential matches categories in order against the front of rest and
// stops at the first category without a match, returning it
func decodeSequential(categories []*entities.Category, rest string, sel entities.Selections) (string, entities.CategoryID) {
	for _, category := range categories {
		code, n := longestMatch(category, rest)
		if n == 0 {
			return rest, category.ID
		}
		sel[category.ID] = code
		rest = rest[n:]
	}
	return rest, ""
}

// longestMatch finds the option with the longest code that prefixes rest. A
// code ending in '-' also matches without its trailing hyphen.
func longestMatch(category *entities.Category, rest string) (entities.OptionCode, int) {
	var best entities.OptionCode
	bestLen := 0
	for _, opt := range category.Options {
		code := string(opt.OptionCode())
		n := 0
		switch {
		case strings.HasPrefix(rest, code):
			n = len(code)
		case len(code) > 1 && strings.HasSuffix(code, "-") && strings.HasPrefix(rest, code[:len(code)-1]):
			n = len(code) - 1
		}
		if n > bestLen {
			best, bestLen = opt.OptionCode(), n
		}
	}
	return best, bestLen
}

type candidate struct {
	category entities.CategoryID
	code     entities.OptionCode
}

// decodeAnyOrder fills unset additional and manifold categories from rest in
// whatever order their codes appear, longest codes first. It returns the
// text it could not match.
func decodeAnyOrder(m *entities.ProductModel, rest string, sel entities.Selections) string {
	var candidates []candidate
	for _, category := range m.Categories {
		if category.Part == entities.PartRequired {
			continue
		}
		if _, filled := sel[category.ID]; filled {
			continue
		}
		for _, opt := range category.Options {
			candidates = append(candidates, candidate{category: category.ID, code: opt.OptionCode()})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].code) > len(candidates[j].code)
	})

	for {
		rest = strings.TrimLeft(rest, "-")
		if rest == "" {
			return rest
		}

		matched := false
		for _, cand := range candidates {
			if _, filled := sel[cand.category]; filled {
				continue
			}
			if strings.HasPrefix(rest, string(cand.code)) {
				sel[cand.category] = cand.code
				rest = rest[len(cand.code):]
				matched = true
				break
			}
		}
		if !matched {
			return rest
		}
	}
}
