package services_test

import (
	"testing"

	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (*services.CatalogService, *gorm.DB) {
	db := newTestDB(t)
	return services.NewCatalogService(repositories.NewProductRepository(db)), db
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _ := newCatalogService(t)

	product, err := svc.Create(services.ProductInput{
		Name:  "Woven Market Basket",
		Price: 34.50,
	})
	require.NoError(t, err)

	assert.True(t, product.IsAvailable)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.Zero(t, product.StockQuantity)
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.Create(services.ProductInput{Name: "Freebie", Price: -5})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Create(services.ProductInput{Name: "Freebie", Price: 0})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestUpdateProductPartialPatch(t *testing.T) {
	svc, db := newCatalogService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)

	newPrice := 25.00
	updated, err := svc.Update(tote.ID, services.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 25.00, updated.Price)
	// Untouched fields keep their values.
	assert.Equal(t, "Classic Canvas Tote", updated.Name)
	assert.Equal(t, 2, updated.StockQuantity)
}

func TestUpdateProductEmptyPatchIsNoOp(t *testing.T) {
	svc, db := newCatalogService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)

	updated, err := svc.Update(tote.ID, services.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, tote.Name, updated.Name)
	assert.Equal(t, tote.Price, updated.Price)
	assert.Equal(t, tote.StockQuantity, updated.StockQuantity)
}

func TestUpdateProductRejectsBadValues(t *testing.T) {
	svc, db := newCatalogService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)

	bad := -1.0
	_, err := svc.Update(tote.ID, services.ProductPatch{Price: &bad})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	negStock := -3
	_, err = svc.Update(tote.ID, services.ProductPatch{StockQuantity: &negStock})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestGetAndDeleteMissingProduct(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.Get(9999)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	err = svc.Delete(9999)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListFilters(t *testing.T) {
	svc, db := newCatalogService(t)
	seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)
	basket := seedProduct(t, db, "Woven Market Basket", 34.50, 6)
	require.NoError(t, db.Model(&basket).Update("category", "Baskets").Error)

	byCategory, err := svc.List(repositories.ProductFilter{Category: "baskets"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Woven Market Basket", byCategory[0].Name)

	bySearch, err := svc.List(repositories.ProductFilter{Search: "canvas"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Classic Canvas Tote", bySearch[0].Name)

	// "totes" appears only in the category, not the name or description.
	byCategoryTerm, err := svc.List(repositories.ProductFilter{Search: "totes"})
	require.NoError(t, err)
	require.Len(t, byCategoryTerm, 1)
	assert.Equal(t, "Classic Canvas Tote", byCategoryTerm[0].Name)

	paged, err := svc.List(repositories.ProductFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestCategories(t *testing.T) {
	svc, db := newCatalogService(t)
	seedProduct(t, db, "Tote A", 20.00, 2)
	seedProduct(t, db, "Tote B", 22.00, 2)
	basket := seedProduct(t, db, "Basket", 34.50, 6)
	require.NoError(t, db.Model(&basket).Update("category", "Baskets").Error)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Baskets", "Totes"}, categories)
}
