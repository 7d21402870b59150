package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000002_create_carts_tables", &CreateCartsTables{})
	migration.Register("20260301000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260301000004_create_favorites_table", &CreateFavoritesTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: carts + cart_items --------

type CreateCartsTables struct{}

func (m *CreateCartsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: orders + order_items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0005: favorites --------

type CreateFavoritesTable struct{}

func (m *CreateFavoritesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Favorite{})
}

func (m *CreateFavoritesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("favorites")
}
