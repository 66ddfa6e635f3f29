package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

// Spec is one derived performance value in percent of calibrated span
type Spec struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Display renders the value with the fixed four-decimal precision that
// exports compare verbatim
func (s Spec) Display() string {
	return s.Value.StringFixed(4)
}

// PerformanceReport is the specification table for one calibration.
// Ratio is nil when no custom calibration is set and the nominal 1:1
// turndown applies.
type PerformanceReport struct {
	ModelID     entities.ModelID     `json:"modelId"`
	Range       entities.OptionCode  `json:"range"`
	Unit        string               `json:"unit"`
	Calibration entities.Calibration `json:"calibration"`
	Ratio       *float64             `json:"ratio"`
	MaxRatio    float64              `json:"maxRatio"`
	Specs       []Spec               `json:"specs"`
}

// Spec looks up a spec by key
func (r *PerformanceReport) Spec(key string) (Spec, bool) {
	for _, s := range r.Specs {
		if s.Key == key {
			return s, true
		}
	}
	return Spec{}, false
}

// EffectiveRatio returns the ratio the specs were computed at
func (r *PerformanceReport) EffectiveRatio() float64 {
	if r.Ratio == nil {
		return 1
	}
	return *r.Ratio
}
