package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/auth"
)

func init() {
	Register("products", SeedProducts)
	Register("users", SeedUsers)
}

// SeedProducts inserts the starter catalogue. Existing titles are skipped so
// the seeder can be re-run safely.
func SeedProducts(db *gorm.DB) error {
	products := []models.Product{
		{
			Title:       "Vintage Film Camera",
			Description: "A fully working 35mm film camera with a 50mm prime lens.",
			Price:       12999.00,
			ImageURL:    "https://images.micromarket.app/seed/camera.jpg",
		},
		{
			Title:       "Premium Leather Backpack",
			Description: "Handcrafted full-grain leather backpack with a padded laptop sleeve.",
			Price:       8499.00,
			ImageURL:    "https://images.micromarket.app/seed/backpack.jpg",
		},
		{
			Title:       "Wireless Noise-Cancelling Headphones",
			Description: "Over-ear headphones with active noise cancellation and 30h battery.",
			Price:       15999.00,
			ImageURL:    "https://images.micromarket.app/seed/headphones.jpg",
		},
		{
			Title:       "Fitness Smart Watch",
			Description: "Water-resistant smart watch with heart-rate and sleep tracking.",
			Price:       4999.00,
			ImageURL:    "https://images.micromarket.app/seed/watch.jpg",
		},
	}

	for _, p := range products {
		var existing models.Product
		err := db.Where("title = ?", p.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers inserts two demo accounts with the password "password".
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "alice@example.com", Password: hash, Name: "Alice"},
		{Email: "bob@example.com", Password: hash, Name: "Bob"},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}
