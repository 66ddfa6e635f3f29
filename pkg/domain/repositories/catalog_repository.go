package repositories

import "github.com/vsinha/ptconfig/pkg/domain/entities"

// CatalogRepository provides access to product model definitions
type CatalogRepository interface {
	GetModel(id entities.ModelID) (*entities.ProductModel, error)
	GetAllModels() ([]*entities.ProductModel, error)
	LoadModels(models []*entities.ProductModel) error
}
