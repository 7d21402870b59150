package services

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
	"github.com/shashiranjanraj/micromarket/pkg/cache"
	"github.com/shashiranjanraj/micromarket/pkg/storage"
)

const (
	defaultPageSize = 10
	productCacheTTL = 5 * time.Minute
)

// CatalogService serves the public product listing and owns product writes.
type CatalogService struct {
	db    *gorm.DB
	disks *storage.Manager
}

func NewCatalogService(db *gorm.DB, disks *storage.Manager) *CatalogService {
	return &CatalogService{db: db, disks: disks}
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products    []models.Product `json:"products"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// ProductInput holds the fields for creating a product.
type ProductInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,numeric,gte=0"`
	ImageURL    string  `json:"imageUrl" validate:"nullable,url"`
}

// List returns a page of products, optionally filtered by a case-insensitive
// substring match on title or description.
func (s *CatalogService) List(search string, page, limit int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	query := s.db.Model(&models.Product{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ProductPage{}, apperr.Wrap(apperr.Internal, "count products", err)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return ProductPage{}, apperr.Wrap(apperr.Internal, "list products", err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return ProductPage{
		Products:    products,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// Get returns a single product, consulting the cache first.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	key := productCacheKey(id)

	var product models.Product
	if cache.Get(key, &product) {
		return product, nil
	}

	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
		}
		return models.Product{}, apperr.Wrap(apperr.Internal, "load product", err)
	}

	cache.Set(key, product, productCacheTTL)
	return product, nil
}

// Create adds a product to the catalog.
func (s *CatalogService) Create(input ProductInput) (models.Product, error) {
	product := models.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "create product", err)
	}
	return product, nil
}

// AttachImage stores an uploaded image on the default disk and points the
// product's imageUrl at it.
func (s *CatalogService) AttachImage(id uint, filename string, body io.Reader) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
		}
		return models.Product{}, apperr.Wrap(apperr.Internal, "load product", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("products/%d%s", product.ID, ext)

	disk := s.disks.Default()
	if err := disk.PutStream(key, body); err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "store image", err)
	}

	product.ImageURL = disk.URL(key)
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "save product", err)
	}

	cache.Del(productCacheKey(product.ID))
	return product, nil
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}
