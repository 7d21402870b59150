// Package routes wires controllers onto the router.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/controllers"
	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/middleware"
	"github.com/shashiranjanraj/micromarket/pkg/response"
	"github.com/shashiranjanraj/micromarket/pkg/router"
	"github.com/shashiranjanraj/micromarket/pkg/storage"
)

// Deps carries everything route registration needs.
type Deps struct {
	DB    *gorm.DB
	Disks *storage.Manager
}

// Register mounts the full API surface on r.
func Register(r *router.Router, deps Deps) {
	authSvc := services.NewAuthService(deps.DB)
	catalogSvc := services.NewCatalogService(deps.DB, deps.Disks)
	cartSvc := services.NewCartService(deps.DB)
	orderSvc := services.NewOrderService(deps.DB)
	favoriteSvc := services.NewFavoriteService(deps.DB)

	authCtl := controllers.NewAuthController(authSvc)
	productCtl := controllers.NewProductController(catalogSvc)
	cartCtl := controllers.NewCartController(cartSvc, orderSvc)
	favoriteCtl := controllers.NewFavoriteController(favoriteSvc)
	orderCtl := controllers.NewOrderController(orderSvc)

	r.Get("/health", "health", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", authCtl.Register)
	api.Post("/auth/login", "auth.login", authCtl.Login)
	api.Get("/auth/me", "auth.me", authCtl.Me, middleware.Auth)

	api.Get("/products", "products.index", productCtl.Index)
	api.Get("/products/{id}", "products.show", productCtl.Show)
	api.Post("/products", "products.store", productCtl.Store, middleware.Auth)
	api.Post("/products/{id}/image", "products.image", productCtl.UploadImage, middleware.Auth)

	authed := api.Group("", middleware.Auth)

	authed.Get("/cart", "cart.show", cartCtl.Show)
	authed.Post("/cart", "cart.add", cartCtl.AddItem)
	authed.Put("/cart/{itemId}", "cart.update", cartCtl.UpdateItem)
	authed.Delete("/cart/{itemId}", "cart.remove", cartCtl.RemoveItem)
	authed.Post("/cart/checkout", "cart.checkout", cartCtl.Checkout)

	authed.Post("/favorites", "favorites.toggle", favoriteCtl.Toggle)
	authed.Get("/favorites", "favorites.index", favoriteCtl.Index)

	authed.Get("/orders", "orders.index", orderCtl.Index)
}
