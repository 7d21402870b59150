package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/micromarket/app/jobs"
	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
	"github.com/shashiranjanraj/micromarket/pkg/collection"
	"github.com/shashiranjanraj/micromarket/pkg/logger"
	"github.com/shashiranjanraj/micromarket/pkg/metrics"
	"github.com/shashiranjanraj/micromarket/pkg/queue"
)

// OrderService turns carts into orders and serves order history. Orders are
// immutable once created.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Checkout converts the user's cart into an order in one transaction: the
// cart row is locked, item prices are captured at their current values, the
// order is written and the cart is emptied. Two checkouts racing on the same
// cart serialize on the row lock, so the loser finds an empty cart.
func (s *OrderService) Checkout(userID uint) (models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cartQuery := tx
		if tx.Dialector.Name() != "sqlite" {
			// SQLite has no FOR UPDATE; its writer lock covers the whole
			// database anyway.
			cartQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var cart models.Cart
		if err := cartQuery.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.InvalidState, "Cart is empty")
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.New(apperr.InvalidState, "Cart is empty")
		}

		total := collection.Sum(items, func(it models.CartItem) float64 {
			return it.Product.Price * float64(it.Quantity)
		})
		orderItems := collection.Map(items, func(it models.CartItem) models.OrderItem {
			return models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Product.Price,
				Product:   it.Product,
			}
		})

		order = models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.OrderStatusCompleted,
			Items:       orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Hard delete so re-added products do not hit the lines from the
		// previous checkout in the unique index.
		return tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return models.Order{}, apperr.From(err)
	}

	metrics.RecordOrder(order.TotalAmount)
	s.dispatchConfirmation(order)

	return order, nil
}

// List returns the user's orders newest first, with items and products.
func (s *OrderService) List(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) dispatchConfirmation(order models.Order) {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		logger.Warn("skip order confirmation, user not loaded", "order_id", order.ID, "error", err)
		return
	}

	job := &jobs.OrderConfirmation{
		OrderID: order.ID,
		Email:   user.Email,
		Name:    user.Name,
		Total:   order.TotalAmount,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.Warn("dispatch order confirmation failed", "order_id", order.ID, "error", err)
	}
}
