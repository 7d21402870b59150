package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/auth"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// The pool is pinned to one connection because each :memory: connection
// would otherwise get its own empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         glogger.Default.LogMode(glogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := models.User{Email: email, Password: hash, Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, title string, price float64) models.Product {
	t.Helper()

	product := models.Product{Title: title, Description: "test product", Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
}
