// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
)

// Service handles catalog lookups for the storefront
type Service struct {
	categories CategoryRepository
	products   ProductRepository
}

// NewService creates a new catalog service
func NewService(categories CategoryRepository, products ProductRepository) *Service {
	return &Service{
		categories: categories,
		products:   products,
	}
}

// GetCategories retrieves all categories in display order
func (s *Service) GetCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves one category together with its products
func (s *Service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	category, err := s.categories.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindForCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products for category %d: %w", category.ID, err)
	}
	category.Products = products

	return category, nil
}

// GetProduct retrieves a single product by id
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.products.Find(ctx, id)
}
