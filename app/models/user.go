package models

import "gorm.io/gorm"

// User is an account on the marketplace.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Name     string `gorm:"size:255" json:"name"`
}
