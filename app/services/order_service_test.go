package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
)

func TestCheckout(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	user := createUser(t, db, "alice@example.com")
	camera := createProduct(t, db, "Camera", 12999.00)
	watch := createProduct(t, db, "Watch", 4999.00)

	_, err := carts.AddItem(user.ID, camera.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, watch.ID, 1)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.InDelta(t, 2*12999.00+4999.00, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)

	// The cart must be empty afterwards.
	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutCapturesPriceAtPurchaseTime(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID)
	require.NoError(t, err)

	// Reprice the product after the sale.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 19999.00).Error)

	history, err := orders.List(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Items, 1)

	assert.InDelta(t, 12999.00, history[0].Items[0].Price, 0.001, "order must keep the price paid")
	assert.InDelta(t, 12999.00, order.TotalAmount, 0.001)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	user := createUser(t, db, "alice@example.com")

	// No cart at all.
	_, err := orders.Checkout(user.ID)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.InvalidState, appErr.Kind)

	// Cart exists but has no items.
	_, err = carts.Get(user.ID)
	require.NoError(t, err)

	_, err = orders.Checkout(user.ID)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.InvalidState, appErr.Kind)
}

func TestCheckoutTwiceNeedsTwoCarts(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = orders.Checkout(user.ID)
	require.NoError(t, err)

	// The same cart cannot be checked out again.
	_, err = orders.Checkout(user.ID)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.InvalidState, appErr.Kind)
}

func TestOrderListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	first, err := orders.Checkout(user.ID)
	require.NoError(t, err)

	_, err = carts.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	second, err := orders.Checkout(user.ID)
	require.NoError(t, err)

	history, err := orders.List(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.NotEmpty(t, history[0].Items[0].Product.Title, "items must come with their product")
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	db := newTestDB(t)
	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := carts.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = orders.Checkout(alice.ID)
	require.NoError(t, err)

	bobOrders, err := orders.List(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobOrders)
}
