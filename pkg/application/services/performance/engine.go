// Package performance derives accuracy and auxiliary effects from the
// turndown between a range option's rated span and a calibrated span.
package performance

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
)

// Precision is the number of decimal places every spec value carries
const Precision = 4

// Spec keys
const (
	SpecAccuracy           = "accuracy"
	SpecTemperatureEffect  = "temperatureEffect"
	SpecVibrationEffect    = "vibrationEffect"
	SpecPowerSupplyEffect  = "powerSupplyEffect"
	SpecStaticPressureZero = "staticPressureZeroEffect"
	SpecStaticPressureSpan = "staticPressureSpanEffect"
)

// ErrorKind classifies why a report could not be produced
type ErrorKind int

const (
	KindRangeNotSelected ErrorKind = iota + 1
	KindNotANumber
	KindInverted
	KindOutOfBounds
	KindSpanTooSmall
	KindRatioExceeded
	KindAccuracyNotApplicable
	KindAccuracyUnavailable
)

// String method for ErrorKind enum
func (k ErrorKind) String() string {
	switch k {
	case KindRangeNotSelected:
		return "RangeNotSelected"
	case KindNotANumber:
		return "NotANumber"
	case KindInverted:
		return "Inverted"
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindSpanTooSmall:
		return "SpanTooSmall"
	case KindRatioExceeded:
		return "RatioExceeded"
	case KindAccuracyNotApplicable:
		return "AccuracyNotApplicable"
	case KindAccuracyUnavailable:
		return "AccuracyUnavailable"
	default:
		return "Unknown"
	}
}

// Error is a user-correctable evaluation failure. Message is already
// rendered for display.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Engine evaluates performance reports
type Engine struct {
	messages messages.Lookup
}

// NewEngine creates an engine rendering errors and labels through lookup
func NewEngine(lookup messages.Lookup) *Engine {
	if lookup == nil {
		lookup = messages.KeyLookup{}
	}
	return &Engine{messages: lookup}
}

// Accuracy exposes the accuracy curve for a model's range option, so chart
// renderers plot the same function the report is computed from
func (e *Engine) Accuracy(m *entities.ProductModel, rangeCode entities.OptionCode) (AccuracyInfo, bool) {
	info, ok := accuracyTable[accuracyKey{model: m.ID, rng: rangeCode}]
	return info, ok
}

// Evaluate computes the specification table for sel calibrated to
// calibrated. An empty calibration yields the nominal 1:1 report with a nil
// Ratio. No partial report is returned with an error.
func (e *Engine) Evaluate(m *entities.ProductModel, sel entities.Selections, calibrated entities.CalibratedRange) (*dto.PerformanceReport, error) {
	opt, ok := m.RangeOption(sel)
	if !ok {
		return nil, e.fail(KindRangeNotSelected, messages.RangeNotSelected)
	}

	cal, fault := opt.Calibrate(calibrated)
	switch fault {
	case entities.RangeNotANumber:
		return nil, e.fail(KindNotANumber, messages.RangeNotANumber)
	case entities.RangeInverted:
		return nil, e.fail(KindInverted, messages.RangeInverted)
	case entities.RangeOutOfBounds:
		return nil, e.fail(KindOutOfBounds, messages.RangeOutOfBounds,
			format(opt.Min), format(opt.Max), opt.Unit)
	case entities.RangeSpanTooSmall:
		return nil, e.fail(KindSpanTooSmall, messages.RangeSpanTooSmall, format(opt.MinSpan), opt.Unit)
	}

	info, ok := e.Accuracy(m, opt.Code)
	if !ok {
		return nil, e.fail(KindAccuracyUnavailable, messages.AccuracyUnavailable, string(opt.Code))
	}

	var ratio *float64
	r := 1.0
	if cal.Custom {
		r = opt.RatedSpan() / cal.Span()
		ratio = &r
	}

	accuracy, err := info.Evaluate(r)
	switch {
	case errors.Is(err, errRatioExceeded):
		return nil, e.fail(KindRatioExceeded, messages.RatioExceeded, format(info.MaxRatio))
	case err != nil:
		return nil, e.fail(KindAccuracyNotApplicable, messages.AccuracyNotApplicable, format(r))
	}
	// r may overshoot MaxRatio by the evaluation tolerance
	r = math.Min(r, info.MaxRatio)

	report := &dto.PerformanceReport{
		ModelID:     m.ID,
		Range:       opt.Code,
		Unit:        opt.Unit,
		Calibration: cal,
		Ratio:       ratio,
		MaxRatio:    info.MaxRatio,
	}

	fx := familyEffects[m.Family]
	report.Specs = append(report.Specs,
		e.spec(SpecAccuracy, messages.SpecAccuracy, accuracy),
		e.spec(SpecTemperatureEffect, messages.SpecTemperatureEffect, fx.temperature.at(r)),
		e.spec(SpecVibrationEffect, messages.SpecVibrationEffect, fx.vibration.at(r)),
		e.spec(SpecPowerSupplyEffect, messages.SpecPowerSupplyEffect, fx.powerSupply.at(r)),
	)

	if m.Family == entities.FamilyDifferential {
		if sp, ok := staticPressureTable[opt.Code]; ok {
			report.Specs = append(report.Specs,
				e.spec(SpecStaticPressureZero, messages.SpecStaticPressureZero, sp.zero*r),
				e.spec(SpecStaticPressureSpan, messages.SpecStaticPressureSpan, sp.span),
			)
		}
	}

	return report, nil
}

func (e *Engine) spec(key string, label messages.Key, v float64) dto.Spec {
	return dto.Spec{
		Key:   key,
		Label: e.messages.Message(label),
		Value: decimal.NewFromFloat(v).Round(Precision),
	}
}

func (e *Engine) fail(kind ErrorKind, key messages.Key, args ...any) *Error {
	return &Error{Kind: kind, Message: e.messages.Message(key, args...)}
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
