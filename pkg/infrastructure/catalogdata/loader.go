// Package catalogdata loads the transmitter catalog from YAML. The default
// catalog is compiled into the binary.
package catalogdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/services/catalog_validator"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is a loaded, integrity-checked set of product models
type Catalog struct {
	Version int
	Models  []*entities.ProductModel
}

type document struct {
	Version int            `yaml:"version" validate:"gte=1"`
	Shared  map[string]any `yaml:"shared"`
	Models  []modelDoc     `yaml:"models" validate:"required,min=1,dive"`
}

type modelDoc struct {
	ID          string        `yaml:"id" validate:"required"`
	Name        string        `yaml:"name" validate:"required"`
	BaseCode    string        `yaml:"base_code" validate:"required,uppercase"`
	Description string        `yaml:"description"`
	Family      string        `yaml:"family" validate:"required,oneof=gauge absolute differential"`
	Rules       rulesDoc      `yaml:"rules"`
	Categories  []categoryDoc `yaml:"categories" validate:"required,min=1,dive"`
}

type rulesDoc struct {
	M20Housings                 []string          `yaml:"m20_housings"`
	NPTHousings                 []string          `yaml:"npt_housings"`
	M20Connectors               []string          `yaml:"m20_connectors"`
	NPTConnectors               []string          `yaml:"npt_connectors"`
	NonExplosionProofConnectors []string          `yaml:"non_explosion_proof_connectors"`
	ExplosionProofCertificates  []string          `yaml:"explosion_proof_certificates"`
	ManifoldNone                string            `yaml:"manifold_none" validate:"required"`
	AllowedManifolds            []string          `yaml:"allowed_manifolds"`
	ManifoldTypeTags            map[string]string `yaml:"manifold_type_tags" validate:"dive,len=2"`
	WeldNeckNone                string            `yaml:"weld_neck_none" validate:"required"`
	WeldNeckSupported           bool              `yaml:"weld_neck_supported"`
	MaleWeldNecks               []string          `yaml:"male_weld_necks"`
	FemaleWeldNecks             []string          `yaml:"female_weld_necks"`
	MaleProcessConnections      []string          `yaml:"male_process_connections"`
	FemaleProcessConnections    []string          `yaml:"female_process_connections"`
}

type categoryDoc struct {
	ID        string      `yaml:"id" validate:"required"`
	Title     string      `yaml:"title" validate:"required"`
	Part      string      `yaml:"part" validate:"required,oneof=required additional manifold"`
	Sequence  int         `yaml:"sequence" validate:"gt=0"`
	Validator string      `yaml:"validator" validate:"omitempty,oneof=connector manifold weldNeck"`
	Options   []optionDoc `yaml:"options" validate:"required,min=1,dive"`
}

type optionDoc struct {
	Code        string   `yaml:"code" validate:"required,uppercase"`
	Description string   `yaml:"description" validate:"required"`
	Details     string   `yaml:"details"`
	Min         *float64 `yaml:"min" validate:"required_with=MinSpan"`
	Max         *float64 `yaml:"max" validate:"required_with=MinSpan"`
	Unit        string   `yaml:"unit" validate:"required_with=MinSpan"`
	MinSpan     *float64 `yaml:"min_span" validate:"omitempty,gt=0"`
}

var validate = validator.New()

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(embedded))
}

// LoadFile reads a catalog from a YAML file
func LoadFile(filename string) (*Catalog, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filename, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes, validates and integrity-checks a catalog document
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog YAML: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	models := make([]*entities.ProductModel, 0, len(doc.Models))
	for _, md := range doc.Models {
		model, err := buildModel(md)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	result := catalog_validator.ValidateCatalog(models)
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("catalog integrity check failed: %w",
			errors.New(strings.Join(result.Errors, "; ")))
	}

	return &Catalog{Version: doc.Version, Models: models}, nil
}

func buildModel(md modelDoc) (*entities.ProductModel, error) {
	family, _ := entities.ParseFamily(md.Family)

	categories := make([]*entities.Category, 0, len(md.Categories))
	for _, cd := range md.Categories {
		category, err := buildCategory(cd)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", md.ID, err)
		}
		categories = append(categories, category)
	}

	model, err := entities.NewProductModel(
		entities.ModelID(md.ID),
		md.Name,
		md.BaseCode,
		family,
		categories,
		buildRules(md.Rules),
	)
	if err != nil {
		return nil, err
	}
	model.Description = md.Description
	return model, nil
}

func buildCategory(cd categoryDoc) (*entities.Category, error) {
	part, _ := entities.ParsePart(cd.Part)

	options := make([]entities.Option, 0, len(cd.Options))
	for _, od := range cd.Options {
		if od.MinSpan == nil {
			options = append(options, entities.PlainOption{
				Code:        entities.OptionCode(od.Code),
				Description: od.Description,
				Details:     od.Details,
			})
			continue
		}

		rangeOption, err := entities.NewRangeOption(
			entities.OptionCode(od.Code), od.Description, *od.Min, *od.Max, od.Unit, *od.MinSpan)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cd.ID, err)
		}
		rangeOption.Details = od.Details
		options = append(options, *rangeOption)
	}

	return &entities.Category{
		ID:        entities.CategoryID(cd.ID),
		Title:     cd.Title,
		Part:      part,
		Sequence:  cd.Sequence,
		Validator: entities.ValidatorID(cd.Validator),
		Options:   options,
	}, nil
}

func buildRules(rd rulesDoc) entities.RuleSet {
	tags := make(map[entities.OptionCode]string, len(rd.ManifoldTypeTags))
	for code, tag := range rd.ManifoldTypeTags {
		tags[entities.OptionCode(code)] = tag
	}

	return entities.RuleSet{
		M20Housings:                 codes(rd.M20Housings),
		NPTHousings:                 codes(rd.NPTHousings),
		M20Connectors:               codes(rd.M20Connectors),
		NPTConnectors:               codes(rd.NPTConnectors),
		NonExplosionProofConnectors: codes(rd.NonExplosionProofConnectors),
		ExplosionProofCertificates:  codes(rd.ExplosionProofCertificates),
		ManifoldNone:                entities.OptionCode(rd.ManifoldNone),
		AllowedManifolds:            codes(rd.AllowedManifolds),
		ManifoldTypeTags:            tags,
		WeldNeckNone:                entities.OptionCode(rd.WeldNeckNone),
		WeldNeckSupported:           rd.WeldNeckSupported,
		MaleWeldNecks:               codes(rd.MaleWeldNecks),
		FemaleWeldNecks:             codes(rd.FemaleWeldNecks),
		MaleProcessConnections:      codes(rd.MaleProcessConnections),
		FemaleProcessConnections:    codes(rd.FemaleProcessConnections),
	}
}

func codes(in []string) []entities.OptionCode {
	out := make([]entities.OptionCode, len(in))
	for i, s := range in {
		out[i] = entities.OptionCode(s)
	}
	return out
}
