package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
	"github.com/shashiranjanraj/micromarket/pkg/collection"
)

// FavoriteService manages each user's favorites set.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips a product in or out of the user's favorites and reports the
// resulting state.
func (s *FavoriteService) Toggle(userID, productID uint) (bool, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.New(apperr.NotFound, "Product not found")
		}
		return false, apperr.Wrap(apperr.Internal, "load product", err)
	}

	var favorite models.Favorite
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
	switch {
	case err == nil:
		// Hard delete so a later re-favorite can reuse the unique index slot.
		if err := s.db.Unscoped().Delete(&favorite).Error; err != nil {
			return false, apperr.Wrap(apperr.Internal, "remove favorite", err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		favorite = models.Favorite{UserID: userID, ProductID: productID}
		if err := s.db.Create(&favorite).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent toggle already favorited it; that is the
				// state the caller asked for.
				return true, nil
			}
			return false, apperr.Wrap(apperr.Internal, "add favorite", err)
		}
		return true, nil
	default:
		return false, apperr.Wrap(apperr.Internal, "load favorite", err)
	}
}

// List returns the products the user has favorited, most recent first.
func (s *FavoriteService) List(userID uint) ([]models.Product, error) {
	var favorites []models.Favorite
	err := s.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list favorites", err)
	}

	return collection.Map(favorites, func(f models.Favorite) models.Product {
		return f.Product
	}), nil
}
