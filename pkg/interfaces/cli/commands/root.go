// Package commands wires the ptconfig command tree
package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/ptconfig/pkg/application/services/configurator"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/infrastructure/catalogdata"
	"github.com/vsinha/ptconfig/pkg/infrastructure/config"
	"github.com/vsinha/ptconfig/pkg/infrastructure/i18n"
	"github.com/vsinha/ptconfig/pkg/infrastructure/logging"
	"github.com/vsinha/ptconfig/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/ptconfig/pkg/interfaces/cli/output"
)

// Config holds the global flags. Empty fields fall back to the config file,
// then to built-in defaults.
type Config struct {
	ConfigFile  string
	Locale      string
	Format      string
	LogLevel    string
	CatalogPath string
}

// app is the state shared by subcommands once the root pre-run has loaded
// settings and the catalog
type app struct {
	flags   Config
	out     io.Writer
	cfg     config.Config
	logger  *zap.Logger
	catalog *memory.CatalogRepository
	service *configurator.Service
}

// NewRootCommand builds the command tree writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:           "ptconfig",
		Short:         "Configure pressure transmitters and decode their order codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&a.flags.Locale, "locale", "", "Message locale, for example en or de")
	flags.StringVar(&a.flags.Format, "format", "", "Output format: text, json, csv")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.flags.CatalogPath, "catalog", "", "Path to a catalog YAML file replacing the built-in one")

	rootCmd.AddCommand(
		a.newModelsCommand(),
		a.newOptionsCommand(),
		a.newEncodeCommand(),
		a.newDecodeCommand(),
		a.newPerfCommand(),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.flags.ConfigFile, false)
	if err != nil {
		return err
	}
	if a.flags.Locale != "" {
		cfg.Locale = a.flags.Locale
	}
	if a.flags.Format != "" {
		cfg.Format = a.flags.Format
	}
	if a.flags.LogLevel != "" {
		cfg.Log.Level = a.flags.LogLevel
	}
	if a.flags.CatalogPath != "" {
		cfg.CatalogPath = a.flags.CatalogPath
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger

	translator, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}

	var catalog *catalogdata.Catalog
	if cfg.CatalogPath != "" {
		catalog, err = catalogdata.LoadFile(cfg.CatalogPath)
	} else {
		catalog, err = catalogdata.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	a.catalog = memory.NewCatalogRepository(len(catalog.Models))
	if err := a.catalog.LoadModels(catalog.Models); err != nil {
		return err
	}

	a.service = configurator.NewServiceWithConfig(a.catalog, configurator.ServiceConfig{
		Messages: translator,
		Logger:   logger,
	})

	logger.Debug("catalog loaded",
		zap.Int("version", catalog.Version),
		zap.Int("models", len(catalog.Models)),
		zap.String("locale", translator.Locale().String()))
	return nil
}

func (a *app) output() output.Config {
	return output.Config{Format: a.cfg.Format, Out: a.out}
}

// parseAssignments turns repeated --set category=code flags into selections
func parseAssignments(values []string) (entities.Selections, error) {
	sel := make(entities.Selections, len(values))
	for _, v := range values {
		category, code, ok := strings.Cut(v, "=")
		if !ok || category == "" || code == "" {
			return nil, fmt.Errorf("invalid --set %q, expected category=code", v)
		}
		sel[entities.CategoryID(category)] = entities.OptionCode(strings.ToUpper(code))
	}
	return sel, nil
}

// chooseAll applies sel to session in category sequence order, so that
// prerequisites such as the housing land before the options checked against
// them
func chooseAll(session *configurator.Session, sel entities.Selections) error {
	ids := make([]entities.CategoryID, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return sequence(session.Model, ids[i]) < sequence(session.Model, ids[j])
	})

	for _, id := range ids {
		if err := session.Choose(id, sel[id]); err != nil {
			return err
		}
	}
	return nil
}

func sequence(m *entities.ProductModel, id entities.CategoryID) int {
	if c, ok := m.Category(id); ok {
		return c.Sequence
	}
	return int(^uint(0) >> 1)
}

// Execute runs the command tree against os.Args
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}
