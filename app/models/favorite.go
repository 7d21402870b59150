package models

import "gorm.io/gorm"

// Favorite marks a product as favorited by a user. Row presence is the only
// signal; toggling deletes the row if present and inserts it if absent.
type Favorite struct {
	gorm.Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"userId"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"productId"`
	Product   Product `json:"product"`
}
