// Package codec converts between selections and order codes.
//
// Encoding concatenates option codes in category sequence order. Decoding is
// a greedy longest-prefix parser: required categories are positional and stop
// at the first miss, additional and manifold categories are matched in any
// order. Trailing text that matches nothing is reported, never rejected.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
	"github.com/vsinha/ptconfig/pkg/domain/repositories"
)

// ManifoldPrefix starts every manifold model number
const ManifoldPrefix = "SS2000-"

// Codec encodes and decodes order codes for the models of one catalog
type Codec struct {
	catalog  repositories.CatalogRepository
	messages messages.Lookup
}

// New creates a codec over catalog, rendering placeholders through lookup
func New(catalog repositories.CatalogRepository, lookup messages.Lookup) *Codec {
	if lookup == nil {
		lookup = messages.KeyLookup{}
	}
	return &Codec{catalog: catalog, messages: lookup}
}

// Encode builds the order code for sel. calibrated is used for line 3 when it
// is a valid custom calibration of the selected range; specialRequest is
// passed through as line 4.
func (c *Codec) Encode(m *entities.ProductModel, sel entities.Selections, calibrated entities.CalibratedRange, specialRequest string) dto.OrderCode {
	return dto.OrderCode{
		Line1:            m.BaseCode + concatPart(m, sel, entities.PartRequired),
		Line2:            concatPart(m, sel, entities.PartAdditional),
		ManifoldCode:     ManifoldCode(m, sel),
		TransmitterLine3: c.line3(m, sel, calibrated),
		TransmitterLine4: specialRequest,
	}
}

// ManifoldCode returns the manifold model number, or nil when no manifold is
// selected
func ManifoldCode(m *entities.ProductModel, sel entities.Selections) *string {
	code, ok := sel[entities.CategoryManifold]
	if !ok || !m.Rules.IsRealManifold(code) {
		return nil
	}

	tag, ok := m.Rules.ManifoldTypeTags[code]
	if !ok {
		tag = string(code)
	}

	var b strings.Builder
	b.WriteString(ManifoldPrefix)
	b.WriteString(tag)
	for _, id := range entities.ManifoldSpectrumOrder {
		b.WriteString(string(sel[id]))
	}

	out := b.String()
	return &out
}

func (c *Codec) line3(m *entities.ProductModel, sel entities.Selections, calibrated entities.CalibratedRange) string {
	opt, ok := m.RangeOption(sel)
	if !ok {
		return c.messages.Message(messages.Line3SelectRange)
	}

	cal, fault := opt.Calibrate(calibrated)
	if fault != entities.RangeOK || !cal.Custom {
		return opt.Description
	}
	return fmt.Sprintf("%s ~ %s %s", formatNumber(cal.Low), formatNumber(cal.High), opt.Unit)
}

func concatPart(m *entities.ProductModel, sel entities.Selections, part entities.Part) string {
	var b strings.Builder
	for _, category := range m.CategoriesByPart(part) {
		b.WriteString(string(sel[category.ID]))
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
