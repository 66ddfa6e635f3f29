package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/application/services/codec"
	"github.com/vsinha/ptconfig/pkg/application/services/performance"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/infrastructure/csv"
	"github.com/vsinha/ptconfig/pkg/interfaces/cli/output"
)

func (a *app) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the product models in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.catalog.GetAllModels()
			if err != nil {
				return err
			}
			return output.GenerateModels(models, a.output())
		},
	}
}

func (a *app) newOptionsCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "options <model> [category]",
		Short: "Show options with their validity against the current selections",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(args[0], set)
			if err != nil {
				return err
			}

			categories := session.Model.Categories
			if len(args) == 2 {
				category, ok := session.Model.Category(entities.CategoryID(args[1]))
				if !ok {
					return fmt.Errorf("unknown category %s for model %s", args[1], session.Model.ID)
				}
				categories = []*entities.Category{category}
			}

			for _, category := range categories {
				states, err := session.Options(category.ID)
				if err != nil {
					return err
				}
				if err := output.GenerateOptions(category, states, a.output()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "Current selection as category=code, repeatable")
	return cmd
}

func (a *app) newEncodeCommand() *cobra.Command {
	var (
		set            []string
		low, high      string
		specialRequest string
	)

	cmd := &cobra.Command{
		Use:   "encode <model>",
		Short: "Build the order code and performance table for a selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(args[0], set)
			if err != nil {
				return err
			}
			session.SetRange(entities.CalibratedRange{Low: low, High: high})
			if specialRequest != "" {
				session.SetSpecialRequest(specialRequest)
			}

			summary, err := session.Summary()
			if err != nil {
				return err
			}
			return output.GenerateSummary(output.Summary{
				OrderCode:        summary.OrderCode,
				Report:           summary.Report,
				PerformanceError: summary.Performance,
			}, a.output())
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "Selection as category=code, repeatable")
	cmd.Flags().StringVar(&low, "low", "", "Calibrated lower range value")
	cmd.Flags().StringVar(&high, "high", "", "Calibrated upper range value")
	cmd.Flags().StringVar(&specialRequest, "special", "", "Special request text for line 4")
	return cmd
}

func (a *app) newDecodeCommand() *cobra.Command {
	var model, file string

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Parse an order code, a manifold model number with --model, or a CSV batch with --file",
		Args: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return a.decodeBatch(file)
			}
			raw := strings.Join(args, " ")

			if strings.HasPrefix(codec.Normalize(raw), codec.ManifoldPrefix) {
				if model == "" {
					return fmt.Errorf("decoding a manifold code needs --model")
				}
				m, err := a.catalog.GetModel(entities.ModelID(model))
				if err != nil {
					return err
				}
				result, err := a.service.Codec().DecodeManifold(m, raw)
				if err != nil {
					return err
				}
				return output.GenerateDecode(m, &dto.DecodeResult{
					Model:      m,
					ModelID:    m.ID,
					Prefix:     codec.ManifoldPrefix + result.TypeTag,
					Selections: result.Selections,
					StoppedAt:  result.StoppedAt,
					Remainder:  result.Remainder,
				}, a.output())
			}

			session := a.service.NewSession()
			result, err := session.LoadCode(raw)
			if err != nil {
				return err
			}
			return output.GenerateDecode(session.Model, result, a.output())
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model the manifold code belongs to")
	cmd.Flags().StringVar(&file, "file", "", "CSV file with tag,order_code columns to decode in bulk")
	return cmd
}

// decodeBatch decodes every line of an order-code CSV. A line whose model is
// not recognized is reported in its row and does not stop the batch.
func (a *app) decodeBatch(file string) error {
	lines, err := csv.NewLoader().LoadOrderCodes(file)
	if err != nil {
		return err
	}

	rows := make([]output.BatchRow, 0, len(lines))
	partial := 0
	for _, line := range lines {
		row := output.BatchRow{Row: line.Row, Tag: line.Tag, OrderCode: line.OrderCode}
		row.Result, row.Err = a.service.NewSession().LoadCode(line.OrderCode)
		if row.Err != nil || !row.Result.Complete() {
			partial++
		}
		rows = append(rows, row)
	}

	a.logger.Info("order batch decoded",
		zap.String("file", file),
		zap.Int("rows", len(rows)),
		zap.Int("incomplete", partial))
	return output.GenerateBatchDecode(rows, a.output())
}

func (a *app) newPerfCommand() *cobra.Command {
	var (
		low, high string
		curve     bool
		steps     int
	)

	cmd := &cobra.Command{
		Use:   "perf <model> <range>",
		Short: "Compute performance for a calibrated range, or plot the accuracy curve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(args[0], []string{string(entities.CategoryRange) + "=" + args[1]})
			if err != nil {
				return err
			}

			if curve {
				rangeCode := session.Selections[entities.CategoryRange]
				info, ok := a.service.Engine().Accuracy(session.Model, rangeCode)
				if !ok {
					return fmt.Errorf("no accuracy curve for range %s of model %s", rangeCode, session.Model.ID)
				}
				title := fmt.Sprintf("%s range %s accuracy", session.Model.BaseCode, rangeCode)
				return output.GenerateCurve(title, performance.Curve(info, steps), a.output())
			}

			session.SetRange(entities.CalibratedRange{Low: low, High: high})
			summary, err := session.Summary()
			if err != nil {
				return err
			}
			if summary.Performance != nil {
				return summary.Performance
			}
			return output.GenerateSummary(output.Summary{
				OrderCode: summary.OrderCode,
				Report:    summary.Report,
			}, a.output())
		},
	}
	cmd.Flags().StringVar(&low, "low", "", "Calibrated lower range value")
	cmd.Flags().StringVar(&high, "high", "", "Calibrated upper range value")
	cmd.Flags().BoolVar(&curve, "curve", false, "Output the sampled accuracy curve instead")
	cmd.Flags().IntVar(&steps, "steps", 20, "Number of curve intervals")
	return cmd
}
