package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	orders, err := c.svc.List(userID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, orders)
}
