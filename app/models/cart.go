package models

import "gorm.io/gorm"

// Cart is the user's mutable pre-purchase collection. One per user,
// created lazily on first access.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one line in a cart. The (cart_id, product_id) pair is unique:
// adding a product already in the cart increments quantity instead of
// inserting a second row.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"cartId"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"productId"`
	Quantity  int     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Product   Product `json:"product"`
}
