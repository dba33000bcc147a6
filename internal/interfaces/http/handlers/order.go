// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// OrderHandler handles order confirmation endpoints
type OrderHandler struct {
	orderManager *order.Manager
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderManager *order.Manager) *OrderHandler {
	return &OrderHandler{
		orderManager: orderManager,
	}
}

// GetOrder handles GET /orders/:id, the read-only reconstruction of a
// committed order for the confirmation page
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.orderManager.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data": gin.H{
			"customer":         details.Customer,
			"order_record":     details.OrderRecord,
			"ordered_products": details.OrderedProducts,
			"products":         details.Products,
		},
	})
}
