package seeders

import (
	"github.com/skbags/atelier/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small demo catalogue. It is idempotent: nothing
// happens when the products table already has rows.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []models.Product{
		{
			Name:          "Classic Canvas Tote",
			Description:   "Roomy everyday tote in waxed canvas with leather handles.",
			Price:         20.00,
			Category:      "Totes",
			Images:        models.ImageList{},
			StockQuantity: 12,
			IsAvailable:   true,
		},
		{
			Name:          "Woven Market Basket",
			Description:   "Hand-woven seagrass basket, lined with cotton.",
			Price:         34.50,
			Category:      "Baskets",
			Images:        models.ImageList{},
			StockQuantity: 6,
			IsAvailable:   true,
		},
		{
			Name:          "Crossbody Satchel",
			Description:   "Compact vegetable-tanned leather satchel with brass hardware.",
			Price:         89.00,
			Category:      "Satchels",
			Images:        models.ImageList{},
			StockQuantity: 3,
			IsAvailable:   true,
		},
		{
			Name:          "Drawstring Pouch",
			Description:   "Small linen pouch for cards and coins.",
			Price:         12.00,
			Category:      "Accessories",
			Images:        models.ImageList{},
			StockQuantity: 25,
			IsAvailable:   true,
		},
	}

	return db.Create(&demo).Error
}
