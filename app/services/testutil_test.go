package services_test

import (
	"path/filepath"
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// newFileTestDB backs the database with a file so multiple connections can
// run transactions against the same store. Transactions start immediate so
// a second writer waits on the busy timeout instead of hitting a lock
// upgrade conflict.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") +
		"?_busy_timeout=5000&_txlock=immediate"
	return openTestDB(t, dsn)
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	p := models.Product{
		Name:          name,
		Price:         price,
		Category:      "Totes",
		Images:        models.ImageList{},
		StockQuantity: stock,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}
