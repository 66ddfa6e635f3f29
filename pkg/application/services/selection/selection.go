// Package selection applies user choices to a selection map and cascades the
// resets they imply. Every function returns a new map and leaves its input
// untouched.
package selection

import "github.com/vsinha/ptconfig/pkg/domain/entities"

// Apply sets category id to code and cascades consequential resets.
//
// Apply never fails. A code the validator would have rejected is stored as
// given. When the pressure range changes the caller owes a reset of any custom
// calibration; see RangeChanged.
func Apply(m *entities.ProductModel, sel entities.Selections, id entities.CategoryID, code entities.OptionCode) entities.Selections {
	next := sel.Clone()
	next[id] = code

	rules := m.Rules
	switch id {
	case entities.CategoryManifold:
		if !rules.IsRealManifold(code) {
			clearManifoldSpectrum(m, next)
		} else if m.SupportsManifoldAndWeldNeck() {
			next[entities.CategoryWeldNeck] = rules.WeldNeckNone
		}
	case entities.CategoryWeldNeck:
		if rules.IsRealWeldNeck(code) && m.SupportsManifoldAndWeldNeck() {
			next[entities.CategoryManifold] = rules.ManifoldNone
			clearManifoldSpectrum(m, next)
		}
	}

	return next
}

// Clear unsets category id. Clearing the manifold drops the manifold spectrum
// with it.
func Clear(m *entities.ProductModel, sel entities.Selections, id entities.CategoryID) entities.Selections {
	next := sel.Clone()
	delete(next, id)
	if id == entities.CategoryManifold {
		clearManifoldSpectrum(m, next)
	}
	return next
}

// RangeChanged reports whether the pressure-range option differs between
// before and after
func RangeChanged(before, after entities.Selections) bool {
	b, bok := before[entities.CategoryRange]
	a, aok := after[entities.CategoryRange]
	return bok != aok || b != a
}

func clearManifoldSpectrum(m *entities.ProductModel, sel entities.Selections) {
	for _, c := range m.CategoriesByPart(entities.PartManifold) {
		delete(sel, c.ID)
	}
}
