package models

import "gorm.io/gorm"

// OrderStatusCompleted is the only status an order ever has: orders are
// created in their terminal state and there is no cancellation path.
const OrderStatusCompleted = "completed"

// Order is the immutable record of a completed purchase.
type Order struct {
	gorm.Model
	UserID      uint        `gorm:"not null;index" json:"userId"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Status      string      `gorm:"size:50;not null" json:"status"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots one cart line at checkout time. Price is the product's
// price at the instant the order was placed and is never recomputed, so
// historical orders are immune to later catalogue changes.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Product   Product `json:"product"`
}
