// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/pkg/validate"
)

var (
	// ErrEmptyCart is returned when PlaceOrder is called with a nil or
	// empty cart. No order is created.
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrCommitFailed is returned when the order could not be durably
	// recorded. The caller should retain the cart and offer a retry; the
	// underlying storage cause is logged here, not propagated.
	ErrCommitFailed = errors.New("order: commit failed")
)

// Manager orchestrates validated checkout input into a persisted order
type Manager struct {
	repo     Repository
	products catalog.ProductRepository
	logger   *logrus.Logger
}

// NewManager creates a new order manager
func NewManager(repo Repository, products catalog.ProductRepository, logger *logrus.Logger) *Manager {
	return &Manager{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// OrderDetails is the read-only reconstruction of a committed order for the
// confirmation page.
type OrderDetails struct {
	Customer        Customer          `json:"customer"`
	OrderRecord     *CustomerOrder    `json:"order_record"`
	OrderedProducts []OrderedProduct  `json:"ordered_products"`
	Products        []catalog.Product `json:"products"`
}

// PlaceOrder commits a validated checkout into a persisted order and returns
// the newly assigned order id. The cart's line items and total are
// snapshotted at call time; the cart may be mutated or destroyed by the
// session owner once this call begins.
//
// Form fields are expected to have passed validation already; this method
// does not re-validate them. Checkout failure is an expected, recoverable
// outcome: commit problems come back as ErrCommitFailed, never as a panic or
// a raw storage fault.
func (m *Manager) PlaceOrder(ctx context.Context, form validate.CheckoutForm, shoppingCart *cart.ShoppingCart, surcharge decimal.Decimal) (uint, error) {
	if shoppingCart == nil || shoppingCart.IsEmpty() {
		return 0, ErrEmptyCart
	}

	items := shoppingCart.Items()
	total := shoppingCart.CalculateTotal(surcharge)

	customerOrder := &CustomerOrder{
		OrderNumber:     generateOrderNumber(),
		Amount:          total,
		SurchargeAmount: surcharge,
		Customer: Customer{
			Name:       form.Name,
			Email:      form.Email,
			Phone:      form.Phone,
			Address:    form.Address,
			CityRegion: form.CityRegion,
			CardNumber: form.CardNumber,
		},
		Items: make([]OrderedProduct, 0, len(items)),
	}

	for _, item := range items {
		customerOrder.Items = append(customerOrder.Items, OrderedProduct{
			ProductID:  item.ProductID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: item.Subtotal(),
		})
	}

	id, err := m.repo.Commit(ctx, customerOrder)
	if err != nil {
		m.logger.WithFields(logrus.Fields{
			"order_number": customerOrder.OrderNumber,
			"item_count":   len(customerOrder.Items),
			"error":        err.Error(),
		}).Error("order commit failed")
		return 0, ErrCommitFailed
	}

	return id, nil
}

// GetOrderDetails reconstructs a committed order for confirmation display.
// Returns ErrNotFound if the id does not correspond to a committed order.
func (m *Manager) GetOrderDetails(ctx context.Context, orderID uint) (*OrderDetails, error) {
	customerOrder, err := m.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Resolve the current catalog entries for the ordered products. Retired
	// products are skipped; the order lines themselves carry the snapshot.
	products := make([]catalog.Product, 0, len(customerOrder.Items))
	for _, item := range customerOrder.Items {
		product, err := m.products.Find(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}
		products = append(products, *product)
	}

	return &OrderDetails{
		Customer:        customerOrder.Customer,
		OrderRecord:     customerOrder,
		OrderedProducts: customerOrder.Items,
		Products:        products,
	}, nil
}

// generateOrderNumber returns a unique order number, e.g. ORD-20260115-9F3A21C4
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
