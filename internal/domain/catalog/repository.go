// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a category or product id is unknown.
var ErrNotFound = errors.New("catalog: not found")

// CategoryRepository is the narrow read contract for categories.
type CategoryRepository interface {
	Find(ctx context.Context, id uint) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
}

// ProductRepository is the narrow read contract for products.
type ProductRepository interface {
	Find(ctx context.Context, id uint) (*Product, error)
	FindForCategory(ctx context.Context, categoryID uint) ([]Product, error)
}
