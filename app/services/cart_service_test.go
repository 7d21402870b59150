package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
)

func TestGetCreatesEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	again, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "second read must reuse the same cart")
}

func TestAddItemMergesDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Headphones", 15999.00)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	item, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "duplicate adds must merge into one line")
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")

	_, err := svc.AddItem(user.ID, 9999, 1)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.InvalidInput, appErr.Kind)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Watch", 4999.00)

	item, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItem(user.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = svc.UpdateItem(user.ID, item.ID, 0)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.InvalidInput, appErr.Kind)
}

func TestCartOwnershipIsEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	product := createProduct(t, db, "Backpack", 8499.00)

	item, err := svc.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)

	// Bob touching Alice's line must look exactly like a missing item.
	_, err = svc.UpdateItem(bob.ID, item.ID, 3)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.NotFound, appErr.Kind)

	err = svc.RemoveItem(bob.ID, item.ID)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.NotFound, appErr.Kind)
}

func TestRemoveThenReAdd(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	item, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(user.ID, item.ID))

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// The unique (cart, product) slot must be free again.
	item, err = svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestPruneStale(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCartService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	// Nothing is old enough yet.
	n, err := svc.PruneStale(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Backdate the cart and its items past the cutoff.
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Update("updated_at", past).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("1 = 1").Update("updated_at", past).Error)

	n, err = svc.PruneStale(time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
