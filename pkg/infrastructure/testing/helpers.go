package testing

import (
	"fmt"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/infrastructure/catalogdata"
	"github.com/vsinha/ptconfig/pkg/infrastructure/repositories/memory"
)

// BuildCatalogRepository loads the embedded catalog into a memory repository.
// It panics if the embedded catalog is broken, which the catalogdata tests
// report in detail.
func BuildCatalogRepository() *memory.CatalogRepository {
	catalog, err := catalogdata.Default()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}

	repo := memory.NewCatalogRepository(len(catalog.Models))
	if err := repo.LoadModels(catalog.Models); err != nil {
		panic(fmt.Sprintf("loading embedded catalog: %v", err))
	}
	return repo
}

// Model returns one model of the embedded catalog
func Model(id entities.ModelID) *entities.ProductModel {
	m, err := BuildCatalogRepository().GetModel(id)
	if err != nil {
		panic(err)
	}
	return m
}

// BuildPrefixModel builds a small model whose codes overlap: option "A" is a
// prefix of "AB" in the required part, and "X" of "XY" in the additional part
func BuildPrefixModel() *entities.ProductModel {
	plain := func(code string) entities.Option {
		return &entities.PlainOption{Code: entities.OptionCode(code), Description: code}
	}
	rng, err := entities.NewRangeOption("1", "0 to 100 kPa", 0, 100, "kPa", 1)
	if err != nil {
		panic(err)
	}

	categories := []*entities.Category{
		{ID: entities.CategoryRange, Title: "Range", Part: entities.PartRequired, Sequence: 10,
			Options: []entities.Option{rng}},
		{ID: entities.CategoryDiaphragm, Title: "First", Part: entities.PartRequired, Sequence: 20,
			Options: []entities.Option{plain("A"), plain("AB")}},
		{ID: entities.CategoryFillFluid, Title: "Second", Part: entities.PartRequired, Sequence: 30,
			Options: []entities.Option{plain("C"), plain("BC")}},
		{ID: entities.CategoryDisplay, Title: "Extra", Part: entities.PartAdditional, Sequence: 110,
			Options: []entities.Option{plain("X"), plain("XY")}},
		{ID: entities.CategoryBracket, Title: "Other", Part: entities.PartAdditional, Sequence: 120,
			Options: []entities.Option{plain("Z"), plain("Y")}},
	}

	m, err := entities.NewProductModel("px", "Prefix test model", "PX-100", entities.FamilyGauge, categories, entities.RuleSet{})
	if err != nil {
		panic(err)
	}
	return m
}
