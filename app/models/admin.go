package models

import "gorm.io/gorm"

// Admin is a back-office user able to manage products and orders.
type Admin struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null" json:"-"` // bcrypt, never serialised
	FullName       string `gorm:"size:255" json:"full_name"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
}
