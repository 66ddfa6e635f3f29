// Package csv reads batches of order codes from CSV files
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// OrderLine is one order code of a batch. Row is the 1-based line number in
// the file, header included.
type OrderLine struct {
	Row       int
	Tag       string
	OrderCode string
}

// Loader handles loading order-code batches from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var orderHeader = []string{"tag", "order_code"}

// LoadOrderCodes loads a batch from a CSV file with a tag,order_code header
func (l *Loader) LoadOrderCodes(filename string) ([]OrderLine, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open order file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadOrderCodes(file)
}

// ReadOrderCodes reads a batch from r. Blank order codes are skipped.
func (l *Loader) ReadOrderCodes(r io.Reader) ([]OrderLine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read order CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("order CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, orderHeader) {
		return nil, fmt.Errorf("order CSV header mismatch. Expected: %v, Got: %v", orderHeader, header)
	}

	var lines []OrderLine
	for i, record := range records[1:] {
		if len(record) != len(orderHeader) {
			return nil, fmt.Errorf("order CSV row %d: expected %d columns, got %d", i+2, len(orderHeader), len(record))
		}

		code := strings.TrimSpace(record[1])
		if code == "" {
			continue
		}
		lines = append(lines, OrderLine{
			Row:       i + 2,
			Tag:       strings.TrimSpace(record[0]),
			OrderCode: code,
		})
	}

	return lines, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
