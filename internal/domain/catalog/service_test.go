package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

type fakeCategoryRepo struct {
	categories []catalog.Category
}

func (r *fakeCategoryRepo) Find(_ context.Context, id uint) (*catalog.Category, error) {
	for _, category := range r.categories {
		if category.ID == id {
			found := category
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]catalog.Category, error) {
	return r.categories, nil
}

type fakeProductRepo struct {
	products []catalog.Product
}

func (r *fakeProductRepo) Find(_ context.Context, id uint) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.ID == id {
			found := product
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (r *fakeProductRepo) FindForCategory(_ context.Context, categoryID uint) ([]catalog.Product, error) {
	var matched []catalog.Product
	for _, product := range r.products {
		if product.CategoryID == categoryID {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func newService() *catalog.Service {
	categories := &fakeCategoryRepo{categories: []catalog.Category{
		{ID: 1, Name: "dairy", SortOrder: 1},
		{ID: 2, Name: "bakery", SortOrder: 2},
	}}
	products := &fakeProductRepo{products: []catalog.Product{
		{ID: 10, Name: "milk", Price: decimal.RequireFromString("1.70"), CategoryID: 1},
		{ID: 11, Name: "cheese", Price: decimal.RequireFromString("2.39"), CategoryID: 1},
		{ID: 12, Name: "sourdough loaf", Price: decimal.RequireFromString("3.99"), CategoryID: 2},
	}}
	return catalog.NewService(categories, products)
}

func TestGetCategories(t *testing.T) {
	service := newService()

	categories, err := service.GetCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "dairy", categories[0].Name)
	assert.Equal(t, "bakery", categories[1].Name)
}

func TestGetCategory_AttachesProducts(t *testing.T) {
	service := newService()

	category, err := service.GetCategory(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "dairy", category.Name)
	require.Len(t, category.Products, 2)
	assert.Equal(t, "milk", category.Products[0].Name)
	assert.Equal(t, "cheese", category.Products[1].Name)
}

func TestGetCategory_NotFound(t *testing.T) {
	service := newService()

	_, err := service.GetCategory(context.Background(), 99)

	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestGetProduct(t *testing.T) {
	service := newService()

	product, err := service.GetProduct(context.Background(), 12)
	require.NoError(t, err)

	assert.Equal(t, "sourdough loaf", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("3.99")))
}

func TestGetProduct_NotFound(t *testing.T) {
	service := newService()

	_, err := service.GetProduct(context.Background(), 99)

	require.ErrorIs(t, err, catalog.ErrNotFound)
}
