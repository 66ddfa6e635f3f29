// Package rules decides whether an option is currently selectable.
//
// Each category names a ValidatorID; the registry maps that id to a pure
// function of the model's RuleSet and the current selections. Rule functions
// return message keys, and the Validator renders them through the injected
// messages.Lookup.
package rules

import (
	"slices"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
)

// Verdict is what a rule function decides
type Verdict struct {
	Valid bool
	Key   messages.Key
	Args  []any
}

var allow = Verdict{Valid: true}

func reject(key messages.Key, args ...any) Verdict {
	return Verdict{Key: key, Args: args}
}

// Func is a compatibility rule for one category
type Func func(rules entities.RuleSet, code entities.OptionCode, sel entities.Selections) Verdict

var registry = map[entities.ValidatorID]Func{
	entities.ValidatorConnector: connectorRule,
	entities.ValidatorManifold:  manifoldRule,
	entities.ValidatorWeldNeck:  weldNeckRule,
}

// Lookup returns the rule registered for id
func Lookup(id entities.ValidatorID) (Func, bool) {
	fn, ok := registry[id]
	return fn, ok
}

// connectorRule matches the connector thread to the housing and keeps plain
// glands and dust plugs off explosion-proof certified builds.
func connectorRule(r entities.RuleSet, code entities.OptionCode, sel entities.Selections) Verdict {
	housing, ok := sel[entities.CategoryHousing]
	if !ok {
		return reject(messages.SelectHousingFirst)
	}

	need := r.HousingThread(housing)
	if got := r.ConnectorThread(code); got != need {
		return reject(messages.ConnectorThreadMismatch, need.String())
	}

	if cert, ok := sel[entities.CategoryExplosionProof]; ok &&
		slices.Contains(r.ExplosionProofCertificates, cert) &&
		slices.Contains(r.NonExplosionProofConnectors, code) {
		return reject(messages.ConnectorNotExplosionProof, string(cert))
	}

	return allow
}

func manifoldRule(r entities.RuleSet, code entities.OptionCode, sel entities.Selections) Verdict {
	if !r.IsRealManifold(code) {
		return allow
	}
	if !slices.Contains(r.AllowedManifolds, code) {
		return reject(messages.ManifoldNotAllowed)
	}
	if r.IsRealWeldNeck(sel[entities.CategoryWeldNeck]) {
		return reject(messages.ManifoldConflictsWeldNeck)
	}
	return allow
}

// weldNeckRule requires the weld neck to be the gender complement of the
// process connection.
func weldNeckRule(r entities.RuleSet, code entities.OptionCode, sel entities.Selections) Verdict {
	if !r.IsRealWeldNeck(code) {
		return allow
	}
	if !r.WeldNeckSupported {
		return reject(messages.WeldNeckNotApplicable)
	}
	if r.IsRealManifold(sel[entities.CategoryManifold]) {
		return reject(messages.WeldNeckConflictsManifold)
	}

	pc, ok := sel[entities.CategoryProcessConnection]
	if !ok {
		return reject(messages.SelectProcessConnectionFirst)
	}

	switch {
	case slices.Contains(r.FemaleProcessConnections, pc):
		if !slices.Contains(r.MaleWeldNecks, code) {
			return reject(messages.WeldNeckRequiresMale)
		}
	case slices.Contains(r.MaleProcessConnections, pc):
		if !slices.Contains(r.FemaleWeldNecks, code) {
			return reject(messages.WeldNeckRequiresFemale)
		}
	}

	return allow
}
