package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/pkg/bind"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

type ProductController struct {
	svc *services.CatalogService
}

func NewProductController(svc *services.CatalogService) *ProductController {
	return &ProductController{svc: svc}
}

// Index lists products. Supports ?search=, ?page= and ?limit=.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := c.svc.List(q.Get("search"), page, limit)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, result)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.svc.Get(id)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, product)
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var req services.ProductInput
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.svc.Create(req)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Created(w, product)
}

// UploadImage accepts a multipart form with an "image" part and attaches it
// to the product.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image upload")
		return
	}
	defer file.Close()

	product, err := c.svc.AttachImage(id, header.Filename, file)
	if err != nil {
		response.AppError(r.Context(), w, err)
		return
	}

	response.Success(w, product)
}
