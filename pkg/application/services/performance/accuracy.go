package performance

import (
	"errors"
	"math"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

// AccuracyFunc returns reference accuracy in percent of span at turndown
// ratio r. ok is false where the function is not defined.
type AccuracyFunc func(r float64) (value float64, ok bool)

// AccuracyInfo is the published accuracy curve of one range of one model
type AccuracyInfo struct {
	Func     AccuracyFunc
	MaxRatio float64
}

// ratioTolerance absorbs float error when the calibrated span equals the
// minimum span exactly
const ratioTolerance = 1e-9

var (
	errRatioExceeded = errors.New("turndown ratio exceeds maximum")
	errNotApplicable = errors.New("accuracy not applicable at this ratio")
)

// Evaluate applies the curve at r, rejecting ratios above MaxRatio and gaps
// in the function's domain. Ratios within tolerance above MaxRatio are
// evaluated at MaxRatio.
func (a AccuracyInfo) Evaluate(r float64) (float64, error) {
	if r > a.MaxRatio*(1+ratioTolerance) {
		return 0, errRatioExceeded
	}
	r = math.Min(r, a.MaxRatio)
	v, ok := a.Func(r)
	if !ok {
		return 0, errNotApplicable
	}
	return v, nil
}

// Point is one sample of an accuracy curve
type Point struct {
	Ratio    float64 `json:"ratio"`
	Accuracy float64 `json:"accuracy"`
}

// Curve samples info at steps+1 evenly spaced ratios from 1 to MaxRatio,
// skipping ratios where the function is undefined
func Curve(info AccuracyInfo, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	points := make([]Point, 0, steps+1)
	width := (info.MaxRatio - 1) / float64(steps)
	for i := 0; i <= steps; i++ {
		r := 1 + width*float64(i)
		if v, err := info.Evaluate(r); err == nil {
			points = append(points, Point{Ratio: r, Accuracy: v})
		}
	}
	return points
}

// standard is the two-segment curve shared by the mid ranges: flat up to
// 10:1, then growing linearly until 100:1 where it ends
func standard(r float64) (float64, bool) {
	switch {
	case r <= 10:
		return 0.04, true
	case r < 100:
		return 0.004 + 0.0036*r, true
	default:
		return 0, false
	}
}

func piecewise(flatTo, flat, offset, slope, end float64) AccuracyFunc {
	return func(r float64) (float64, bool) {
		switch {
		case r <= flatTo:
			return flat, true
		case r <= end:
			return offset + slope*r, true
		default:
			return 0, false
		}
	}
}

type accuracyKey struct {
	model entities.ModelID
	rng   entities.OptionCode
}

// accuracyTable holds the published curves keyed by model and range code
var accuracyTable = map[accuracyKey]AccuracyInfo{
	{"dp", "1"}: {Func: piecewise(2, 0.1, 0.05, 0.025, 20), MaxRatio: 20},
	{"dp", "2"}: {Func: standard, MaxRatio: 100},
	{"dp", "3"}: {Func: standard, MaxRatio: 100},
	{"dp", "4"}: {Func: standard, MaxRatio: 100},
	{"dp", "5"}: {Func: piecewise(10, 0.065, 0.015, 0.005, 100), MaxRatio: 100},

	{"gp", "3"}: {Func: standard, MaxRatio: 100},
	{"gp", "4"}: {Func: standard, MaxRatio: 100},
	{"gp", "5"}: {Func: standard, MaxRatio: 100},
	{"gp", "6"}: {Func: standard, MaxRatio: 100},
	{"gp", "7"}: {Func: piecewise(5, 0.075, 0.025, 0.01, 100), MaxRatio: 100},

	{"ap", "1"}: {Func: piecewise(1, 0.1, 0.05, 0.05, 4), MaxRatio: 4},
	{"ap", "2"}: {Func: piecewise(1, 0.1, 0.05, 0.05, 10), MaxRatio: 10},
	{"ap", "3"}: {Func: piecewise(1, 0.1, 0.05, 0.05, 10), MaxRatio: 10},
	{"ap", "4"}: {Func: piecewise(1, 0.1, 0.05, 0.05, 10), MaxRatio: 10},
}

// affine is a + b*r
type affine struct {
	a, b float64
}

func (f affine) at(r float64) float64 {
	return f.a + f.b*r
}

// effects are the published auxiliary effects per 28 degC, per g and per volt
type effects struct {
	temperature affine
	vibration   affine
	powerSupply affine
}

var familyEffects = map[entities.Family]effects{
	entities.FamilyDifferential: {
		temperature: affine{0.0625, 0.0125},
		vibration:   affine{0, 0.1},
		powerSupply: affine{0.004, 0.001},
	},
	entities.FamilyGauge: {
		temperature: affine{0.0625, 0.0125},
		vibration:   affine{0, 0.1},
		powerSupply: affine{0.004, 0.001},
	},
	entities.FamilyAbsolute: {
		temperature: affine{0.125, 0.025},
		vibration:   affine{0, 0.1},
		powerSupply: affine{0.004, 0.001},
	},
}

// staticPressure is the line-pressure effect per 6.9 MPa of a differential
// range: zero error in percent of URL, span error in percent of reading
type staticPressure struct {
	zero float64
	span float64
}

var staticPressureTable = map[entities.OptionCode]staticPressure{
	"1": {zero: 0.5, span: 0.4},
	"2": {zero: 0.1, span: 0.2},
	"3": {zero: 0.05, span: 0.1},
	"4": {zero: 0.05, span: 0.1},
	"5": {zero: 0.1, span: 0.2},
}
