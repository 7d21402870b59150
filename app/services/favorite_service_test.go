package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
)

func TestToggleFavoriteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewFavoriteService(db)
	user := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	added, err := svc.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, added)

	list, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, product.ID, list[0].ID)

	added, err = svc.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, added)

	list, err = svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// A third toggle re-favorites; the unique slot must be reusable.
	added, err = svc.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestToggleUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewFavoriteService(db)
	user := createUser(t, db, "alice@example.com")

	_, err := svc.Toggle(user.ID, 9999)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.NotFound, appErr.Kind)
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewFavoriteService(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	product := createProduct(t, db, "Camera", 12999.00)

	_, err := svc.Toggle(alice.ID, product.ID)
	require.NoError(t, err)

	bobList, err := svc.List(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}
