package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/bind"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

type CartController struct {
	carts  *services.CartService
	orders *services.OrderService
}

func NewCartController(carts *services.CartService, orders *services.OrderService) *CartController {
	return &CartController{carts: carts, orders: orders}
}

type addItemRequest struct {
	ProductID uint `json:"productId" validate:"required,integer,gte=1"`
	Quantity  int  `json:"quantity" validate:"nullable,integer,gte=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,integer,gte=1"`
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := c.carts.Get(userID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, cart)
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := c.carts.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Created(w, item)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	itemID, ok := paramID(r, "itemId")
	if !ok {
		response.NotFound(w)
		return
	}

	var req updateItemRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.carts.UpdateItem(userID, itemID, req.Quantity)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, item)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	itemID, ok := paramID(r, "itemId")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.carts.RemoveItem(userID, itemID); err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Item removed from cart"})
}

// Checkout converts the cart into an order.
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	order, err := c.orders.Checkout(userID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Created(w, order)
}
