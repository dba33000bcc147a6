// internal/domain/cart/cart.go
package cart

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// ErrInvalidQuantity is returned by Update when the quantity text does not
// parse to a non-negative integer. The cart is left unchanged.
var ErrInvalidQuantity = errors.New("cart: invalid quantity")

// LineItem is one product plus quantity within a cart. The product name and
// unit price are snapshotted at add-time so later catalog changes do not
// affect an open cart.
type LineItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Subtotal returns unit price times quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ShoppingCart is the per-session mutable aggregate of line items. Items keep
// insertion order, which is the display order. A cart must only be mutated by
// one request at a time; the HTTP layer serializes requests per session.
type ShoppingCart struct {
	items []LineItem
	total decimal.Decimal
}

// New creates an empty shopping cart
func New() *ShoppingCart {
	return &ShoppingCart{total: decimal.Zero}
}

// AddItem adds one unit of the product to the cart. If the product already
// has a line item its quantity is incremented by 1, otherwise a new line item
// with quantity 1 is appended.
func (c *ShoppingCart) AddItem(product *catalog.Product) {
	for i := range c.items {
		if c.items[i].ProductID == product.ID {
			c.items[i].Quantity++
			return
		}
	}

	c.items = append(c.items, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
}

// Update sets the quantity of the product's line item from its text form.
// A quantity of 0 removes the line item, a positive quantity replaces it.
// Non-numeric or negative input returns ErrInvalidQuantity and leaves the
// cart unchanged.
func (c *ShoppingCart) Update(product *catalog.Product, quantityText string) error {
	quantity, err := strconv.Atoi(quantityText)
	if err != nil || quantity < 0 {
		return ErrInvalidQuantity
	}

	if quantity == 0 {
		c.Remove(product.ID)
		return nil
	}

	for i := range c.items {
		if c.items[i].ProductID == product.ID {
			c.items[i].Quantity = quantity
			return nil
		}
	}

	// Updating a product that is not in the cart yet inserts it, preserving
	// the snapshot rule.
	c.items = append(c.items, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	})
	return nil
}

// Remove deletes the line item for the product if present, no-op otherwise
func (c *ShoppingCart) Remove(productID uint) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties all line items and resets the total to zero
func (c *ShoppingCart) Clear() {
	c.items = nil
	c.total = decimal.Zero
}

// CalculateTotal sums all subtotals plus the flat delivery surcharge, stores
// the result as the cart's total and returns it. The surcharge is applied
// once per order, and waived entirely for an empty cart.
func (c *ShoppingCart) CalculateTotal(surcharge decimal.Decimal) decimal.Decimal {
	if len(c.items) == 0 {
		c.total = decimal.Zero
		return c.total
	}

	total := surcharge
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	c.total = total
	return c.total
}

// Items returns the line items in display order. The returned slice is a
// copy; mutating it does not affect the cart.
func (c *ShoppingCart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total returns the most recently calculated total
func (c *ShoppingCart) Total() decimal.Decimal {
	return c.total
}

// IsEmpty reports whether the cart holds no line items
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.items) == 0
}

// NumberOfItems returns the count of distinct line items
func (c *ShoppingCart) NumberOfItems() int {
	return len(c.items)
}

// TotalQuantity returns the sum of quantities across all line items
func (c *ShoppingCart) TotalQuantity() int {
	quantity := 0
	for _, item := range c.items {
		quantity += item.Quantity
	}
	return quantity
}

// Restore rebuilds a cart from stored line items and total. Used by the
// session store when loading a cart back from Redis.
func Restore(items []LineItem, total decimal.Decimal) *ShoppingCart {
	return &ShoppingCart{items: items, total: total}
}
