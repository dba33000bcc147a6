// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order id does not correspond to a
// committed order.
var ErrNotFound = errors.New("order: not found")

// Repository is the narrow persistence contract for orders. Commit must
// record the order header, the customer snapshot and every line as a single
// atomic unit; a partial write must never be observable. It is safe to call
// concurrently for different orders.
type Repository interface {
	Commit(ctx context.Context, order *CustomerOrder) (uint, error)
	FindByID(ctx context.Context, id uint) (*CustomerOrder, error)
}
