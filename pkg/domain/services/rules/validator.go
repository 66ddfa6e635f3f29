package rules

import (
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
)

// Result is the rendered outcome of validating one candidate option
type Result struct {
	Valid     bool
	Reason    string
	ReasonKey messages.Key
	Args      []any
}

// OptionState pairs an option with its current Result
type OptionState struct {
	Option entities.Option
	Result
}

// Validator checks candidate options against current selections
type Validator struct {
	messages messages.Lookup
}

// NewValidator creates a validator rendering reasons through lookup
func NewValidator(lookup messages.Lookup) *Validator {
	if lookup == nil {
		lookup = messages.KeyLookup{}
	}
	return &Validator{messages: lookup}
}

// Validate decides whether code may be selected in category id. It never
// mutates sel.
func (v *Validator) Validate(m *entities.ProductModel, id entities.CategoryID, code entities.OptionCode, sel entities.Selections) Result {
	category, ok := m.Category(id)
	if !ok {
		return v.render(reject(messages.CategoryUnknown, string(id)))
	}
	if !category.HasOption(code) {
		return v.render(reject(messages.OptionNotInCatalog, string(code), string(id)))
	}

	fn, ok := Lookup(category.Validator)
	if !ok {
		return Result{Valid: true}
	}
	return v.render(fn(m.Rules, code, sel))
}

// Options validates every option of a category, in catalog order
func (v *Validator) Options(m *entities.ProductModel, id entities.CategoryID, sel entities.Selections) []OptionState {
	category, ok := m.Category(id)
	if !ok {
		return nil
	}

	states := make([]OptionState, 0, len(category.Options))
	for _, opt := range category.Options {
		states = append(states, OptionState{
			Option: opt,
			Result: v.Validate(m, id, opt.OptionCode(), sel),
		})
	}
	return states
}

func (v *Validator) render(verdict Verdict) Result {
	if verdict.Valid {
		return Result{Valid: true}
	}
	return Result{
		Reason:    v.messages.Message(verdict.Key, verdict.Args...),
		ReasonKey: verdict.Key,
		Args:      verdict.Args,
	}
}
