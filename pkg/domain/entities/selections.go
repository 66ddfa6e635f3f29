package entities

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Selections maps a category to its chosen option code. Absent means unset.
type Selections map[CategoryID]OptionCode

// Clone returns an independent copy
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the code selected for a category
func (s Selections) Get(id CategoryID) (OptionCode, bool) {
	code, ok := s[id]
	return code, ok
}

// Restrict returns the subset of s whose categories belong to the given parts of m
func (s Selections) Restrict(m *ProductModel, parts ...Part) Selections {
	out := make(Selections)
	for _, c := range m.Categories {
		for _, p := range parts {
			if c.Part != p {
				continue
			}
			if code, ok := s[c.ID]; ok {
				out[c.ID] = code
			}
		}
	}
	return out
}

// String renders selections as sorted id=code pairs
func (s Selections) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+string(s[CategoryID(k)]))
	}
	return strings.Join(parts, ",")
}

// CalibratedRange is the raw text a user entered for a custom calibration
type CalibratedRange struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// IsUnset reports whether either field is empty
func (r CalibratedRange) IsUnset() bool {
	return strings.TrimSpace(r.Low) == "" || strings.TrimSpace(r.High) == ""
}

// RangeFault classifies why a calibrated range was rejected
type RangeFault int

const (
	RangeOK RangeFault = iota
	RangeNotANumber
	RangeInverted
	RangeOutOfBounds
	RangeSpanTooSmall
)

// Calibration is a parsed calibrated range checked against a range option
type Calibration struct {
	Low    float64
	High   float64
	Custom bool
}

// Span returns High - Low
func (c Calibration) Span() float64 {
	return c.High - c.Low
}

// spanTolerance absorbs float error in high-low when the user enters exactly
// the minimum span
const spanTolerance = 1e-9

// Calibrate parses r against opt. An unset range yields the rated span with
// Custom false.
func (opt RangeOption) Calibrate(r CalibratedRange) (Calibration, RangeFault) {
	if r.IsUnset() {
		return Calibration{Low: opt.Min, High: opt.Max}, RangeOK
	}

	low, err := strconv.ParseFloat(strings.TrimSpace(r.Low), 64)
	if err != nil {
		return Calibration{}, RangeNotANumber
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(r.High), 64)
	if err != nil {
		return Calibration{}, RangeNotANumber
	}

	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return Calibration{}, RangeNotANumber
	}
	if low >= high {
		return Calibration{}, RangeInverted
	}
	if low < opt.Min || high > opt.Max {
		return Calibration{}, RangeOutOfBounds
	}
	if high-low < opt.MinSpan*(1-spanTolerance) {
		return Calibration{}, RangeSpanTooSmall
	}

	return Calibration{Low: low, High: high, Custom: true}, RangeOK
}
