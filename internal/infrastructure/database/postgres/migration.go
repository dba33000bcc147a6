// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Catalog domain - Base tables
		&catalog.Category{},
		&catalog.Product{},

		// Order domain - Dependent tables
		&order.Customer{},
		&order.CustomerOrder{},
		&order.OrderedProduct{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes not covered by the model tags
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating database indexes...")

	indexes := []string{
		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_name ON products(category_id, name)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_customer_orders_created_at ON customer_orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ordered_products_order ON ordered_products(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts the development catalog into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCatalog(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCatalog creates the default grocery categories and products
func (m *Migration) seedCatalog() error {
	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("🏷️ Catalog already seeded, skipping")
		return nil
	}

	log.Println("🏷️ Seeding catalog...")

	categories := []struct {
		category catalog.Category
		products []catalog.Product
	}{
		{
			category: catalog.Category{Name: "dairy", Description: "Milk, cheese and eggs", SortOrder: 1},
			products: []catalog.Product{
				{Name: "milk", Description: "semi-skimmed (1L)", Price: decimal.RequireFromString("1.70")},
				{Name: "cheese", Description: "mild cheddar (330g)", Price: decimal.RequireFromString("2.39")},
				{Name: "free range eggs", Description: "medium-sized (6 eggs)", Price: decimal.RequireFromString("1.76")},
			},
		},
		{
			category: catalog.Category{Name: "meats", Description: "Fresh organic meat", SortOrder: 2},
			products: []catalog.Product{
				{Name: "sausages", Description: "reduced fat (1kg)", Price: decimal.RequireFromString("3.22")},
				{Name: "chicken", Description: "whole chicken (2kg)", Price: decimal.RequireFromString("5.70")},
			},
		},
		{
			category: catalog.Category{Name: "bakery", Description: "Bread and pastries", SortOrder: 3},
			products: []catalog.Product{
				{Name: "sunflower seed loaf", Description: "750g", Price: decimal.RequireFromString("1.89")},
				{Name: "bagels", Description: "plain (6 bagels)", Price: decimal.RequireFromString("1.20")},
			},
		},
		{
			category: catalog.Category{Name: "beverages", Description: "Juices and hot drinks", SortOrder: 4},
			products: []catalog.Product{
				{Name: "orange juice", Description: "freshly squeezed (1.5L)", Price: decimal.RequireFromString("2.50")},
				{Name: "coffee", Description: "fair trade (250g)", Price: decimal.RequireFromString("3.99")},
			},
		},
	}

	for _, entry := range categories {
		category := entry.category
		if err := m.db.Create(&category).Error; err != nil {
			return err
		}
		for _, product := range entry.products {
			product.CategoryID = category.ID
			if err := m.db.Create(&product).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// GetTableInfo logs row counts for the main tables, used in development
func (m *Migration) GetTableInfo() {
	tables := []string{"categories", "products", "customers", "customer_orders", "ordered_products"}

	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("⚠️ Failed to count table %s: %v", table, err)
			continue
		}
		log.Printf("📊 Table %s: %d rows", table, count)
	}
}
