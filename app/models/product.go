package models

import "gorm.io/gorm"

// Product is a catalogue entry. Read-heavy; created by the admin endpoint.
type Product struct {
	gorm.Model
	Title       string  `gorm:"size:255;not null;index" json:"title"`
	Description string  `gorm:"type:text"               json:"description"`
	Price       float64 `gorm:"not null;default:0"      json:"price"`
	ImageURL    string  `gorm:"size:1024"               json:"imageUrl"`
}
