package repositories_test

import (
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func TestDecrementStockGuard(t *testing.T) {
	db := newRepoDB(t)
	repo := repositories.NewProductRepository(db)

	product := models.Product{Name: "Tote", Price: 20, StockQuantity: 3, IsAvailable: true}
	require.NoError(t, repo.Create(&product))

	ok, err := repo.DecrementStock(nil, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only 1 left, so asking for 2 must fail without touching the row.
	ok, err = repo.DecrementStock(nil, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StockQuantity)

	ok, err = repo.DecrementStock(nil, product.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	db := newRepoDB(t)
	repo := repositories.NewProductRepository(db)

	ok, err := repo.DecrementStock(nil, 9999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
