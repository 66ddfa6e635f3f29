package output

import (
	"fmt"
	"strconv"

	"github.com/vsinha/ptconfig/pkg/application/dto"
)

// BatchRow is the outcome of decoding one line of an order-code batch. Result
// is nil when Err is set.
type BatchRow struct {
	Row       int
	Tag       string
	OrderCode string
	Result    *dto.DecodeResult
	Err       error
}

type batchDoc struct {
	Row       int    `json:"row"`
	Tag       string `json:"tag"`
	OrderCode string `json:"orderCode"`
	ModelID   string `json:"modelId,omitempty"`
	Complete  bool   `json:"complete"`
	StoppedAt string `json:"stoppedAt,omitempty"`
	Remainder string `json:"remainder,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r BatchRow) doc() batchDoc {
	d := batchDoc{Row: r.Row, Tag: r.Tag, OrderCode: r.OrderCode}
	if r.Err != nil {
		d.Error = r.Err.Error()
		return d
	}
	d.ModelID = string(r.Result.ModelID)
	d.Complete = r.Result.Complete()
	d.StoppedAt = string(r.Result.StoppedAt)
	d.Remainder = r.Result.Remainder
	return d
}

// GenerateBatchDecode writes one status line per decoded batch row
func GenerateBatchDecode(rows []BatchRow, config Config) error {
	if err := config.check(); err != nil {
		return err
	}

	docs := make([]batchDoc, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.doc())
	}

	switch config.Format {
	case FormatJSON:
		return writeJSON(config.Out, docs)

	case FormatCSV:
		records := [][]string{{"row", "tag", "order_code", "model", "complete", "stopped_at", "remainder", "error"}}
		for _, d := range docs {
			records = append(records, []string{
				strconv.Itoa(d.Row), d.Tag, d.OrderCode, d.ModelID,
				strconv.FormatBool(d.Complete), d.StoppedAt, d.Remainder, d.Error,
			})
		}
		return writeCSV(config.Out, records)

	default:
		for _, d := range docs {
			status := "ok"
			switch {
			case d.Error != "":
				status = "error: " + d.Error
			case !d.Complete:
				status = "partial"
				if d.StoppedAt != "" {
					status += ", stopped at " + d.StoppedAt
				}
				if d.Remainder != "" {
					status += ", unrecognized " + d.Remainder
				}
			}
			fmt.Fprintf(config.Out, "%-4d %-12s %-6s %s\n", d.Row, d.Tag, d.ModelID, status)
		}
		return nil
	}
}
