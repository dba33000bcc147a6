// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is the customer snapshot taken at checkout. One row per order;
// the storefront has no user accounts, so customers are not deduplicated.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Email      string    `gorm:"not null;size:255" json:"email"`
	Phone      string    `gorm:"not null;size:45" json:"phone"`
	Address    string    `gorm:"not null;size:255" json:"address"`
	CityRegion string    `gorm:"not null;size:100" json:"city_region"`
	CardNumber string    `gorm:"not null;size:30" json:"-"` // stored as text, never charged
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerOrder is a committed order. Created exactly once per successful
// commit and immutable thereafter.
type CustomerOrder struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	SurchargeAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"surcharge_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer Customer         `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`
	Items    []OrderedProduct `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderedProduct is one line of a committed order, snapshotted from the cart
// at placement time.
type OrderedProduct struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Name       string          `gorm:"not null;size:255" json:"name"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
}

// TableName overrides
func (Customer) TableName() string       { return "customers" }
func (CustomerOrder) TableName() string  { return "customer_orders" }
func (OrderedProduct) TableName() string { return "ordered_products" }
