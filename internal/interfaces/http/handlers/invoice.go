// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// InvoiceHandler handles invoice-related endpoints
type InvoiceHandler struct {
	orderManager *order.Manager
	pdfService   *pdf.Service
	config       *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderManager *order.Manager, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		orderManager: orderManager,
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// GenerateInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
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

	pdfBuffer, err := h.pdfService.GenerateInvoice(details.OrderRecord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", details.OrderRecord.OrderNumber))
	c.Header("Content-Length", strconv.Itoa(len(pdfBuffer.Bytes())))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
