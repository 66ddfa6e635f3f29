package entities

import "fmt"

// OptionCode is the short token an option contributes to an order code
type OptionCode string

// Option is a selectable value within a category. It is either a PlainOption
// or a RangeOption.
type Option interface {
	OptionCode() OptionCode
	Label() string
	option()
}

// PlainOption is an option without numeric bounds
type PlainOption struct {
	Code        OptionCode
	Description string
	Details     string
}

func (o PlainOption) OptionCode() OptionCode { return o.Code }
func (o PlainOption) Label() string          { return o.Description }
func (o PlainOption) option()                {}

// RangeOption is a pressure-range option. Min and Max bound the rated span,
// MinSpan is the smallest span the instrument can be calibrated to.
type RangeOption struct {
	PlainOption
	Min     float64
	Max     float64
	Unit    string
	MinSpan float64
}

// NewRangeOption creates a validated RangeOption
func NewRangeOption(code OptionCode, description string, min, max float64, unit string, minSpan float64) (*RangeOption, error) {
	if code == "" {
		return nil, fmt.Errorf("option code cannot be empty")
	}
	if min >= max {
		return nil, fmt.Errorf("range %s: min %g must be below max %g", code, min, max)
	}
	if minSpan <= 0 {
		return nil, fmt.Errorf("range %s: minimum span must be positive, got %g", code, minSpan)
	}
	if minSpan > max-min {
		return nil, fmt.Errorf("range %s: minimum span %g exceeds rated span %g", code, minSpan, max-min)
	}

	return &RangeOption{
		PlainOption: PlainOption{Code: code, Description: description},
		Min:         min,
		Max:         max,
		Unit:        unit,
		MinSpan:     minSpan,
	}, nil
}

// RatedSpan returns Max - Min
func (o RangeOption) RatedSpan() float64 {
	return o.Max - o.Min
}
