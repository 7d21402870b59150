package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	token, user, err := svc.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	token, logged, err := svc.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	_, _, err = svc.Register("alice@example.com", "different", "Alice Again")
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.Conflict, appErr.Kind)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login("nobody@example.com", "secret123")
	_, _, wrongPassErr := svc.Login("alice@example.com", "wrong-password")

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	var e1, e2 *apperr.Error
	require.True(t, errors.As(unknownErr, &e1))
	require.True(t, errors.As(wrongPassErr, &e2))

	assert.Equal(t, apperr.Unauthorized, e1.Kind)
	assert.Equal(t, apperr.Unauthorized, e2.Kind)
	assert.Equal(t, e1.Message, e2.Message, "unknown email and wrong password must look identical")
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, user, err := svc.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	me, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = svc.Me(9999)
	require.Error(t, err)
}
