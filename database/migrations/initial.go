package migrations

import (
	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260201000000_create_admins_table", &CreateAdminsTable{})
	migration.Register("20260201000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260201000002_create_orders_tables", &CreateOrdersTables{})
}

// -------- 0001: admins --------

type CreateAdminsTable struct{}

func (m *CreateAdminsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Admin{})
}

func (m *CreateAdminsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("admins")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders + order_items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
