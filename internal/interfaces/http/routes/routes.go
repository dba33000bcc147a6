// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

// SetupRoutes wires the storefront API: catalog browsing, the session cart,
// checkout and order confirmation.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *goredis.Client, cfg *config.Config) {
	log := logger.New(cfg)

	// Repositories
	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	cartStore := redis.NewCartStore(redisClient, cfg.Checkout.CartTTL)

	// Services
	catalogService := catalog.NewService(categoryRepo, productRepo)
	orderManager := order.NewManager(orderRepo, productRepo, log)

	// Handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartStore, catalogService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(cartStore, orderManager, cfg, log)
	orderHandler := handlers.NewOrderHandler(orderManager)
	invoiceHandler := handlers.NewInvoiceHandler(orderManager, cfg)

	// Catalog browsing (no session needed)
	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
	}

	products := rg.Group("/products")
	{
		products.GET("/:id", catalogHandler.GetProduct)
	}

	// Cart and checkout are session-scoped; the session middleware assigns
	// the visitor id and serializes requests per session.
	cart := rg.Group("/cart")
	cart.Use(middleware.Session())
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.Session())
	{
		checkout.GET("", checkoutHandler.GetCheckout)
		checkout.POST("/purchase", checkoutHandler.Purchase)
	}

	// Order confirmation
	orders := rg.Group("/orders")
	{
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
	}
}
