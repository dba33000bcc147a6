// internal/infrastructure/database/postgres/order_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// OrderRepository implements order.Repository on PostgreSQL
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Commit persists the customer snapshot, order header and every line item in
// a single transaction. Either the whole order is durably recorded or
// nothing is.
func (r *OrderRepository) Commit(ctx context.Context, customerOrder *order.CustomerOrder) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// gorm inserts the associated customer and line items within the
		// same transaction as the header.
		if err := tx.Create(customerOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return customerOrder.ID, nil
}

// FindByID loads a committed order with its customer and line items
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*order.CustomerOrder, error) {
	var customerOrder order.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&customerOrder, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %d: %w", id, err)
	}
	return &customerOrder, nil
}
