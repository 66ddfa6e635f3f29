package dto

import (
	"strings"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

// OrderCode is the generated model number. Display, clipboard and every
// export format are rendered from this one value.
type OrderCode struct {
	Line1            string  `json:"line1"`
	Line2            string  `json:"line2"`
	ManifoldCode     *string `json:"manifoldCode"`
	TransmitterLine3 string  `json:"transmitterLine3"`
	TransmitterLine4 string  `json:"transmitterLine4"`
}

// Flatten renders the order code as a plain text block, one line per field,
// skipping empty lines
func (c OrderCode) Flatten() string {
	lines := []string{c.Line1, c.Line2, c.TransmitterLine3, c.TransmitterLine4}
	if c.ManifoldCode != nil {
		lines = append(lines, *c.ManifoldCode)
	}

	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// DecodeResult is the best-effort outcome of parsing a pasted order code
type DecodeResult struct {
	Model      *entities.ProductModel `json:"-"`
	ModelID    entities.ModelID       `json:"modelId"`
	Prefix     string                 `json:"prefix"`
	Selections entities.Selections    `json:"selections"`
	// StoppedAt is the first required category that did not match, if any.
	// Later required categories are left unset.
	StoppedAt entities.CategoryID `json:"stoppedAt,omitempty"`
	// Remainder is the unmatched trailing text, dropped from the selections.
	Remainder string `json:"remainder,omitempty"`
}

// Complete reports whether every character was consumed and every required
// category matched
func (r *DecodeResult) Complete() bool {
	return r.StoppedAt == "" && r.Remainder == ""
}

// ManifoldDecodeResult is the outcome of parsing a manifold model number
type ManifoldDecodeResult struct {
	TypeTag    string              `json:"typeTag"`
	Selections entities.Selections `json:"selections"`
	StoppedAt  entities.CategoryID `json:"stoppedAt,omitempty"`
	Remainder  string              `json:"remainder,omitempty"`
}
