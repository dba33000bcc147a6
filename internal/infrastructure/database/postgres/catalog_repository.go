// internal/infrastructure/database/postgres/catalog_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CategoryRepository implements catalog.CategoryRepository on PostgreSQL
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Find retrieves a category by id
func (r *CategoryRepository) Find(ctx context.Context, id uint) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}
	return &category, nil
}

// FindAll retrieves all categories in display order
func (r *CategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// ProductRepository implements catalog.ProductRepository on PostgreSQL
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Find retrieves a product by id
func (r *ProductRepository) Find(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return &product, nil
}

// FindForCategory retrieves all products belonging to a category
func (r *ProductRepository) FindForCategory(ctx context.Context, categoryID uint) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products for category %d: %w", categoryID, err)
	}
	return products, nil
}
