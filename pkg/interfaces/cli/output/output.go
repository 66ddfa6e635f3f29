package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/application/services/performance"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/services/rules"
)

// Formats accepted by Config.Format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	Out    io.Writer
}

func (c Config) check() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
}

// Summary is the order code together with its performance table. Report is
// nil when PerformanceError explains why it could not be computed.
type Summary struct {
	OrderCode        dto.OrderCode
	Report           *dto.PerformanceReport
	PerformanceError error
}

type specRow struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type summaryDoc struct {
	OrderCode   dto.OrderCode `json:"orderCode"`
	ModelID     string        `json:"modelId,omitempty"`
	Ratio       *float64      `json:"ratio"`
	Specs       []specRow     `json:"specs,omitempty"`
	Performance string        `json:"performanceError,omitempty"`
}

// GenerateSummary writes a configuration summary in the configured format
func GenerateSummary(s Summary, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	switch config.Format {
	case FormatJSON:
		doc := summaryDoc{OrderCode: s.OrderCode}
		if s.Report != nil {
			doc.ModelID = string(s.Report.ModelID)
			doc.Ratio = s.Report.Ratio
			doc.Specs = specRows(s.Report)
		}
		if s.PerformanceError != nil {
			doc.Performance = s.PerformanceError.Error()
		}
		return writeJSON(config.Out, doc)

	case FormatCSV:
		records := [][]string{{"field", "value"}}
		records = append(records,
			[]string{"line1", s.OrderCode.Line1},
			[]string{"line2", s.OrderCode.Line2},
			[]string{"line3", s.OrderCode.TransmitterLine3},
			[]string{"line4", s.OrderCode.TransmitterLine4},
		)
		if s.OrderCode.ManifoldCode != nil {
			records = append(records, []string{"manifold", *s.OrderCode.ManifoldCode})
		}
		if s.Report != nil {
			for _, row := range specRows(s.Report) {
				records = append(records, []string{row.Key, row.Value})
			}
		}
		return writeCSV(config.Out, records)

	default:
		fmt.Fprintf(config.Out, "Order Code\n==========\n%s\n", s.OrderCode.Flatten())
		switch {
		case s.Report != nil:
			writeReportText(config.Out, s.Report)
		case s.PerformanceError != nil:
			fmt.Fprintf(config.Out, "Performance: %v\n", s.PerformanceError)
		}
		return nil
	}
}

func writeReportText(w io.Writer, r *dto.PerformanceReport) {
	ratio := "1 (rated span)"
	if r.Ratio != nil {
		ratio = strconv.FormatFloat(*r.Ratio, 'f', 4, 64)
	}
	fmt.Fprintf(w, "Performance (range %s, %g ~ %g %s, turndown %s)\n",
		r.Range, r.Calibration.Low, r.Calibration.High, r.Unit, ratio)
	fmt.Fprintf(w, "%-32s %10s\n", "Specification", "% of span")
	fmt.Fprintf(w, "%-32s %10s\n", "--------------------------------", "----------")
	for _, spec := range r.Specs {
		fmt.Fprintf(w, "%-32s %10s\n", spec.Label, spec.Display())
	}
}

func specRows(r *dto.PerformanceReport) []specRow {
	rows := make([]specRow, 0, len(r.Specs))
	for _, spec := range r.Specs {
		rows = append(rows, specRow{Key: spec.Key, Label: spec.Label, Value: spec.Display()})
	}
	return rows
}

type decodeDoc struct {
	*dto.DecodeResult
	Complete bool `json:"complete"`
}

// GenerateDecode writes the outcome of decoding an order code
func GenerateDecode(m *entities.ProductModel, result *dto.DecodeResult, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	switch config.Format {
	case FormatJSON:
		return writeJSON(config.Out, decodeDoc{DecodeResult: result, Complete: result.Complete()})

	case FormatCSV:
		records := [][]string{{"category", "code"}}
		for _, c := range m.Categories {
			if code, ok := result.Selections[c.ID]; ok {
				records = append(records, []string{string(c.ID), string(code)})
			}
		}
		return writeCSV(config.Out, records)

	default:
		fmt.Fprintf(config.Out, "Model: %s (%s)\n", m.Name, m.ID)
		for _, c := range m.Categories {
			if code, ok := result.Selections[c.ID]; ok {
				fmt.Fprintf(config.Out, "  %-24s %s\n", c.ID, code)
			}
		}
		if result.StoppedAt != "" {
			fmt.Fprintf(config.Out, "Stopped at: %s\n", result.StoppedAt)
		}
		if result.Remainder != "" {
			fmt.Fprintf(config.Out, "Unrecognized: %s\n", result.Remainder)
		}
		return nil
	}
}

type optionRow struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason,omitempty"`
}

// GenerateOptions writes the options of one category with their verdicts
func GenerateOptions(category *entities.Category, states []rules.OptionState, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	rows := make([]optionRow, 0, len(states))
	for _, st := range states {
		rows = append(rows, optionRow{
			Code:        string(st.Option.OptionCode()),
			Description: st.Option.Label(),
			Valid:       st.Valid,
			Reason:      st.Reason,
		})
	}

	switch config.Format {
	case FormatJSON:
		return writeJSON(config.Out, rows)

	case FormatCSV:
		records := [][]string{{"category", "code", "description", "valid", "reason"}}
		for _, row := range rows {
			records = append(records, []string{
				string(category.ID), row.Code, row.Description, strconv.FormatBool(row.Valid), row.Reason,
			})
		}
		return writeCSV(config.Out, records)

	default:
		fmt.Fprintf(config.Out, "%s (%s)\n", category.Title, category.ID)
		for _, row := range rows {
			mark := "+"
			if !row.Valid {
				mark = "x"
			}
			fmt.Fprintf(config.Out, "  %s %-8s %s", mark, row.Code, row.Description)
			if row.Reason != "" {
				fmt.Fprintf(config.Out, "  [%s]", row.Reason)
			}
			fmt.Fprintln(config.Out)
		}
		return nil
	}
}

type modelRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BaseCode string `json:"baseCode"`
	Family   string `json:"family"`
}

// GenerateModels writes the catalog's product models
func GenerateModels(models []*entities.ProductModel, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	rows := make([]modelRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, modelRow{ID: string(m.ID), Name: m.Name, BaseCode: m.BaseCode, Family: m.Family.String()})
	}

	switch config.Format {
	case FormatJSON:
		return writeJSON(config.Out, rows)

	case FormatCSV:
		records := [][]string{{"id", "name", "baseCode", "family"}}
		for _, row := range rows {
			records = append(records, []string{row.ID, row.Name, row.BaseCode, row.Family})
		}
		return writeCSV(config.Out, records)

	default:
		fmt.Fprintf(config.Out, "%-6s %-12s %-14s %s\n", "ID", "Base Code", "Family", "Name")
		for _, row := range rows {
			fmt.Fprintf(config.Out, "%-6s %-12s %-14s %s\n", row.ID, row.BaseCode, row.Family, row.Name)
		}
		return nil
	}
}

// GenerateCurve writes sampled accuracy curve points. Text output is an SVG
// chart.
func GenerateCurve(title string, points []performance.Point, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	switch config.Format {
	case FormatJSON:
		return writeJSON(config.Out, points)

	case FormatCSV:
		records := [][]string{{"ratio", "accuracy"}}
		for _, p := range points {
			records = append(records, []string{
				strconv.FormatFloat(p.Ratio, 'f', 4, 64),
				strconv.FormatFloat(p.Accuracy, 'f', 4, 64),
			})
		}
		return writeCSV(config.Out, records)

	default:
		_, err := io.WriteString(config.Out, NewAccuracyChart(points).GenerateSVG(title, points))
		return err
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
