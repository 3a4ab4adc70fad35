package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ImageList stores product image URLs as a JSON array in a single column,
// which keeps the schema portable across sqlite and postgres.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("images: cannot scan %T", src)
	}
}

// Product represents a handmade bag in the catalogue.
type Product struct {
	gorm.Model
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	Category      string    `gorm:"size:100;index" json:"category"`
	Images        ImageList `gorm:"type:text" json:"images"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	IsAvailable   bool      `gorm:"not null;default:true" json:"is_available"`
}
