// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/validate"
)

// CheckoutHandler drives the checkout flow: it presents the cart summary with
// the delivery surcharge applied, validates the checkout form and asks the
// order manager to commit. On success the session cart is destroyed; on any
// failure the cart is retained so the visitor can correct and retry.
type CheckoutHandler struct {
	cartStore    cart.Store
	orderManager *order.Manager
	config       *config.Config
	logger       *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cartStore cart.Store, orderManager *order.Manager, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		cartStore:    cartStore,
		orderManager: orderManager,
		config:       cfg,
		logger:       logger,
	}
}

// CheckoutSummary represents the checkout page data
type CheckoutSummary struct {
	Items     []cart.LineItem `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Surcharge decimal.Decimal `json:"surcharge"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseRequest is the checkout form as submitted by the visitor
type PurchaseRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CityRegion string `json:"city_region"`
	CardNumber string `json:"card_number"`
}

// GetCheckout handles GET /checkout, returning the cart summary with the
// delivery surcharge applied
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	shoppingCart, err := h.cartStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	if shoppingCart.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
		return
	}

	surcharge := h.config.Checkout.DeliverySurcharge
	total := shoppingCart.CalculateTotal(surcharge)

	// Persist the calculated total so it is the one committed on purchase.
	if err := h.cartStore.Save(c.Request.Context(), sessionID, shoppingCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save cart",
		})
		return
	}

	subtotal := total.Sub(surcharge)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data": CheckoutSummary{
			Items:     shoppingCart.Items(),
			Subtotal:  subtotal,
			Surcharge: surcharge,
			Total:     total,
		},
	})
}

// Purchase handles POST /checkout/purchase
func (h *CheckoutHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	form := validate.CheckoutForm{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CityRegion: req.CityRegion,
		CardNumber: req.CardNumber,
	}

	// Validation failures are collected per field so the visitor sees every
	// problem at once.
	if invalid, fieldErrors := validate.ValidateForm(form); invalid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            "Validation failed",
			"validation_error": true,
			"field_errors":     fieldErrors,
		})
		return
	}

	sessionID := middleware.GetSessionID(c)

	shoppingCart, err := h.cartStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	orderID, err := h.orderManager.PlaceOrder(c.Request.Context(), form, shoppingCart, h.config.Checkout.DeliverySurcharge)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		// Commit failed. The cart is retained so the visitor can retry.
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":         "Order could not be placed, please try again",
			"order_failure": true,
		})
		return
	}

	// Order committed: the cart's lifecycle ends with its session. The order
	// is already durable, so a failed delete is logged for diagnosis and the
	// stale cart entry is left to expire on its own TTL.
	if err := h.cartStore.Delete(c.Request.Context(), sessionID); err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"order_id":   orderID,
			"error":      err.Error(),
		}).Warn("cart delete after commit failed")
	}
	middleware.ResetSession(c)

	details, err := h.orderManager.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"data":    gin.H{"order_id": orderID},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"order_id":         orderID,
			"customer":         details.Customer,
			"order_record":     details.OrderRecord,
			"ordered_products": details.OrderedProducts,
			"products":         details.Products,
		},
	})
}
