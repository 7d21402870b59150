package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/bind"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

type FavoriteController struct {
	svc *services.FavoriteService
}

func NewFavoriteController(svc *services.FavoriteService) *FavoriteController {
	return &FavoriteController{svc: svc}
}

type toggleRequest struct {
	ProductID uint `json:"productId" validate:"required,integer,gte=1"`
}

type toggleResult struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"isFavorite"`
}

func (c *FavoriteController) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	added, err := c.svc.Toggle(userID, req.ProductID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	msg := "Removed from favorites"
	if added {
		msg = "Added to favorites"
	}
	response.Success(w, toggleResult{Message: msg, IsFavorite: added})
}

func (c *FavoriteController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	products, err := c.svc.List(userID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, products)
}
