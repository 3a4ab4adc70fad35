package repositories

import (
	"github.com/skbags/atelier/app/models"
	"gorm.io/gorm"
)

// AdminRepository handles database operations for Admin.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail looks up an admin by email address.
func (r *AdminRepository) FindByEmail(email string) (models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("email = ?", email).First(&admin).Error
	return admin, err
}

// FindByID looks up an admin by primary key.
func (r *AdminRepository) FindByID(id uint) (models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, id).Error
	return admin, err
}

// Create persists a new admin record.
func (r *AdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// UpdatePassword replaces the stored password hash for one admin.
func (r *AdminRepository) UpdatePassword(id uint, hash string) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).
		Update("hashed_password", hash).Error
}
