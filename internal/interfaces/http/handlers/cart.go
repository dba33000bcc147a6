// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/validate"
)

// CartHandler handles shopping cart endpoints. The handler owns the session
// cart lifecycle: it loads the cart for the visitor's session, applies one
// mutation, and saves it back.
type CartHandler struct {
	cartStore      cart.Store
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartStore cart.Store, catalogService *catalog.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartStore:      cartStore,
		catalogService: catalogService,
		config:         cfg,
	}
}

// AddToCartRequest represents an add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest carries the quantity as entered by the visitor. It
// stays a string so bad input reaches the validator instead of failing JSON
// binding.
type UpdateCartItemRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// CartResponse represents the visitor's cart with computed totals
type CartResponse struct {
	Items         []cart.LineItem `json:"items"`
	NumberOfItems int             `json:"number_of_items"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Surcharge     decimal.Decimal `json:"surcharge"`
	Total         decimal.Decimal `json:"total"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	shoppingCart, ok := h.loadCart(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartResponse(shoppingCart),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, ok := h.findProduct(c, req.ProductID)
	if !ok {
		return
	}

	shoppingCart, ok := h.loadCart(c)
	if !ok {
		return
	}

	shoppingCart.AddItem(product)

	if !h.saveCart(c, shoppingCart) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.cartResponse(shoppingCart),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	productIDParam := c.Param("id")
	if validate.ValidateQuantity(productIDParam, req.Quantity) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product id or quantity",
		})
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, ok := h.findProduct(c, productID)
	if !ok {
		return
	}

	shoppingCart, ok := h.loadCart(c)
	if !ok {
		return
	}

	// Pre-screened above, but Update still guards its own state.
	if err := shoppingCart.Update(product, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid quantity",
		})
		return
	}

	if !h.saveCart(c, shoppingCart) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    h.cartResponse(shoppingCart),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shoppingCart, ok := h.loadCart(c)
	if !ok {
		return
	}

	shoppingCart.Remove(productID)

	if !h.saveCart(c, shoppingCart) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.cartResponse(shoppingCart),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	shoppingCart, ok := h.loadCart(c)
	if !ok {
		return
	}

	shoppingCart.Clear()

	if !h.saveCart(c, shoppingCart) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.cartResponse(shoppingCart),
	})
}

// Helpers shared with the checkout handler

func (h *CartHandler) loadCart(c *gin.Context) (*cart.ShoppingCart, bool) {
	shoppingCart, err := h.cartStore.Load(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return nil, false
	}
	return shoppingCart, true
}

func (h *CartHandler) saveCart(c *gin.Context, shoppingCart *cart.ShoppingCart) bool {
	if err := h.cartStore.Save(c.Request.Context(), middleware.GetSessionID(c), shoppingCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save cart",
		})
		return false
	}
	return true
}

func (h *CartHandler) findProduct(c *gin.Context, productID uint) (*catalog.Product, bool) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return nil, false
	}
	return product, true
}

func (h *CartHandler) cartResponse(shoppingCart *cart.ShoppingCart) CartResponse {
	surcharge := h.config.Checkout.DeliverySurcharge
	total := shoppingCart.CalculateTotal(surcharge)

	subtotal := decimal.Zero
	for _, item := range shoppingCart.Items() {
		subtotal = subtotal.Add(item.Subtotal())
	}

	if shoppingCart.IsEmpty() {
		surcharge = decimal.Zero
	}

	return CartResponse{
		Items:         shoppingCart.Items(),
		NumberOfItems: shoppingCart.NumberOfItems(),
		TotalQuantity: shoppingCart.TotalQuantity(),
		Subtotal:      subtotal,
		Surcharge:     surcharge,
		Total:         total,
	}
}
