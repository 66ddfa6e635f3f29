package memory

import (
	"fmt"

	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/repositories"
)

// CatalogRepository provides in-memory product model storage. Models keep
// their load order.
type CatalogRepository struct {
	models    []*entities.ProductModel
	modelsMap map[entities.ModelID]int
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(expectedModels int) *CatalogRepository {
	return &CatalogRepository{
		models:    make([]*entities.ProductModel, 0, expectedModels),
		modelsMap: make(map[entities.ModelID]int, expectedModels),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadModels loads product models into the repository
func (r *CatalogRepository) LoadModels(models []*entities.ProductModel) error {
	for _, m := range models {
		if err := r.AddModel(m); err != nil {
			return err
		}
	}
	return nil
}

// AddModel adds a product model to the repository
func (r *CatalogRepository) AddModel(m *entities.ProductModel) error {
	if m == nil {
		return fmt.Errorf("model cannot be nil")
	}
	if _, exists := r.modelsMap[m.ID]; exists {
		return fmt.Errorf("model already exists: %s", m.ID)
	}
	r.modelsMap[m.ID] = len(r.models)
	r.models = append(r.models, m)
	return nil
}

// GetModel returns the product model with the given id
func (r *CatalogRepository) GetModel(id entities.ModelID) (*entities.ProductModel, error) {
	index, exists := r.modelsMap[id]
	if !exists {
		return nil, fmt.Errorf("model not found: %s", id)
	}
	return r.models[index], nil
}

// GetAllModels returns all models in load order
func (r *CatalogRepository) GetAllModels() ([]*entities.ProductModel, error) {
	models := make([]*entities.ProductModel, len(r.models))
	copy(models, r.models)
	return models, nil
}
