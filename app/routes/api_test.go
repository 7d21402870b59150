package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/app/routes"
	"github.com/shashiranjanraj/micromarket/pkg/router"
)

func newTestServer(t *testing.T) *httptest.Server {
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

	r := router.New()
	routes.Register(r, routes.Deps{DB: db})

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (int, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	code, env := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createProduct(t *testing.T, srv *httptest.Server, token, title string, price float64) uint {
	t.Helper()

	code, env := call(t, srv, http.MethodPost, "/api/products", token, map[string]interface{}{
		"title":       title,
		"description": "a test product",
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, code)

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	return product.ID
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	code, env := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "alice@example.com")

	code, env := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestProtectedRoutesNeedAToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/cart", "/api/orders", "/api/favorites", "/api/auth/me"} {
		code, _ := call(t, srv, http.MethodGet, path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, code, "GET %s without token", path)
	}

	code, _ := call(t, srv, http.MethodGet, "/api/cart", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPurchaseFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "alice@example.com")
	cameraID := createProduct(t, srv, token, "Camera", 12999.00)
	watchID := createProduct(t, srv, token, "Watch", 4999.00)

	// Add the camera twice; the lines must merge.
	code, _ := call(t, srv, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": cameraID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, code)
	code, _ = call(t, srv, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": cameraID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, code)
	code, _ = call(t, srv, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": watchID,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := call(t, srv, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 2)

	code, env = call(t, srv, http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusCreated, code)

	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.InDelta(t, 2*12999.00+4999.00, order.TotalAmount, 0.001)

	// Cart is empty, order shows up in history.
	code, env = call(t, srv, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Empty(t, cart.Items)

	code, env = call(t, srv, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)

	// A second checkout on the now-empty cart must fail.
	code, env = call(t, srv, http.MethodPost, "/api/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cart is empty", env.Message)
}

func TestFavoriteToggleEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "alice@example.com")
	productID := createProduct(t, srv, token, "Camera", 12999.00)

	body := map[string]interface{}{"productId": productID}

	code, env := call(t, srv, http.MethodPost, "/api/favorites", token, body)
	require.Equal(t, http.StatusOK, code)

	var result struct {
		Message    string `json:"message"`
		IsFavorite bool   `json:"isFavorite"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.IsFavorite)

	code, env = call(t, srv, http.MethodPost, "/api/favorites", token, body)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.IsFavorite)
}

func TestCrossTenantCartAccessIs404(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice@example.com")
	bob := registerUser(t, srv, "bob@example.com")
	productID := createProduct(t, srv, alice, "Camera", 12999.00)

	code, env := call(t, srv, http.MethodPost, "/api/cart", alice, map[string]interface{}{
		"productId": productID,
	})
	require.Equal(t, http.StatusCreated, code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &item))

	path := fmt.Sprintf("/api/cart/%d", item.ID)
	code, _ = call(t, srv, http.MethodPut, path, bob, map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, srv, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductListing(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "alice@example.com")
	for i := 1; i <= 12; i++ {
		createProduct(t, srv, token, fmt.Sprintf("Product %02d", i), float64(i)*10)
	}

	code, env := call(t, srv, http.MethodGet, "/api/products?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, code)

	var page struct {
		Products    []models.Product `json:"products"`
		TotalPages  int              `json:"totalPages"`
		CurrentPage int              `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)

	code, env = call(t, srv, http.MethodGet, "/api/products?search=product+03", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Product 03", page.Products[0].Title)
}
