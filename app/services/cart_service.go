package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
)

// CartService manages the single cart each user owns. The cart row is
// created lazily on first read or first item add.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Get returns the user's cart with items and their products, creating an
// empty cart if none exists yet.
func (s *CartService) Get(userID uint) (models.Cart, error) {
	cart, err := s.cartFor(s.db, userID)
	if err != nil {
		return models.Cart{}, err
	}

	if err := s.db.Preload("Items.Product").First(&cart, cart.ID).Error; err != nil {
		return models.Cart{}, apperr.Wrap(apperr.Internal, "load cart", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// AddItem puts a product into the cart. Adding a product already in the cart
// increments the existing line instead of creating a duplicate.
func (s *CartService) AddItem(userID, productID uint, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.New(apperr.InvalidInput, "Product does not exist")
		}
		return models.CartItem{}, apperr.Wrap(apperr.Internal, "load product", err)
	}

	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartFor(tx, userID)
		if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Concurrent add of the same product won the insert.
					if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
						return err
					}
					item.Quantity += quantity
					return tx.Save(&item).Error
				}
				return err
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return models.CartItem{}, apperr.From(err)
	}

	item.Product = product
	return item, nil
}

// UpdateItem sets a cart line to an exact quantity.
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, apperr.New(apperr.InvalidInput, "Quantity must be at least 1")
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return models.CartItem{}, apperr.Wrap(apperr.Internal, "update cart item", err)
	}

	if err := s.db.Preload("Product").First(&item, item.ID).Error; err != nil {
		return models.CartItem{}, apperr.Wrap(apperr.Internal, "load cart item", err)
	}
	return item, nil
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	// Hard delete so the (cart_id, product_id) unique index is free for a
	// later re-add of the same product.
	if err := s.db.Unscoped().Delete(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "delete cart item", err)
	}
	return nil
}

// PruneStale removes carts untouched for the given duration. Runs from the
// scheduler so abandoned carts do not pile up.
func (s *CartService) PruneStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	var ids []uint
	err := s.db.Model(&models.Cart{}).
		Where("updated_at < ?", cutoff).
		Where("id NOT IN (?)", s.db.Model(&models.CartItem{}).Select("cart_id").Where("updated_at >= ?", cutoff)).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "find stale carts", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("cart_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&models.Cart{}).Error
	})
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "prune stale carts", err)
	}
	return int64(len(ids)), nil
}

// ownedItem loads a cart item only when it belongs to the user's cart. A
// foreign item and a missing item are indistinguishable to the caller.
func (s *CartService) ownedItem(userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := s.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.New(apperr.NotFound, "Item not found in cart")
		}
		return models.CartItem{}, apperr.Wrap(apperr.Internal, "load cart item", err)
	}
	return item, nil
}

func (s *CartService) cartFor(tx *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent first touch of the cart row.
			if err := tx.Where("user_id = ?", userID).First(&cart).Error; err == nil {
				return cart, nil
			}
		}
		return models.Cart{}, apperr.Wrap(apperr.Internal, "create cart", err)
	}
	return cart, nil
}
