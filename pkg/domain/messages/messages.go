// Package messages defines the keys the configurator renders through an
// injected lookup, so rule and codec logic stays locale independent.
package messages

import (
	"fmt"
	"strings"
)

// Key identifies a translatable message
type Key string

const (
	OptionNotInCatalog Key = "option.not_in_catalog"
	CategoryUnknown    Key = "category.unknown"

	SelectHousingFirst           Key = "connector.select_housing_first"
	ConnectorThreadMismatch      Key = "connector.thread_mismatch"
	ConnectorNotExplosionProof   Key = "connector.not_explosion_proof"
	ManifoldNotAllowed           Key = "manifold.not_allowed"
	ManifoldConflictsWeldNeck    Key = "manifold.conflicts_weld_neck"
	WeldNeckNotApplicable        Key = "weld_neck.not_applicable"
	WeldNeckConflictsManifold    Key = "weld_neck.conflicts_manifold"
	SelectProcessConnectionFirst Key = "weld_neck.select_process_connection_first"
	WeldNeckRequiresMale         Key = "weld_neck.requires_male"
	WeldNeckRequiresFemale       Key = "weld_neck.requires_female"

	Line3SelectRange Key = "code.line3_select_range"
	ModelNotFound    Key = "code.model_not_recognized"

	RangeNotSelected      Key = "perf.range_not_selected"
	RangeNotANumber       Key = "perf.not_a_number"
	RangeInverted         Key = "perf.low_not_below_high"
	RangeOutOfBounds      Key = "perf.out_of_bounds"
	RangeSpanTooSmall     Key = "perf.span_too_small"
	RatioExceeded         Key = "perf.ratio_exceeded"
	AccuracyNotApplicable Key = "perf.accuracy_not_applicable"
	AccuracyUnavailable   Key = "perf.accuracy_unavailable"

	SpecAccuracy           Key = "spec.accuracy"
	SpecTemperatureEffect  Key = "spec.temperature_effect"
	SpecVibrationEffect    Key = "spec.vibration_effect"
	SpecPowerSupplyEffect  Key = "spec.power_supply_effect"
	SpecStaticPressureZero Key = "spec.static_pressure_zero"
	SpecStaticPressureSpan Key = "spec.static_pressure_span"
)

// Lookup renders a message for a key
type Lookup interface {
	Message(key Key, args ...any) string
}

// KeyLookup renders the key followed by its arguments. It is the fallback when
// no translation bundle is wired in.
type KeyLookup struct{}

func (KeyLookup) Message(key Key, args ...any) string {
	if len(args) == 0 {
		return string(key)
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return string(key) + ": " + strings.Join(parts, ", ")
}
