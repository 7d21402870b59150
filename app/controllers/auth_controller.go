package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/bind"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.svc.Register(req.Email, req.Password, req.Name)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Created(w, authResponse{Token: token, User: user})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.svc.Login(req.Email, req.Password)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, authResponse{Token: token, User: user})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := c.svc.Me(userID)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, user)
}
