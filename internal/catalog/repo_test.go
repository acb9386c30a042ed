package catalog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))
	return &GormRepo{DB: db}
}

func seed(t *testing.T, repo *GormRepo, products ...models.Product) {
	t.Helper()
	for i := range products {
		_, err := repo.CreateProduct(context.Background(), &products[i])
		require.NoError(t, err)
	}
}

func TestGetProduct(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo, models.Product{Name: "gadget", Description: "a gadget", Price: 19.99})

	p, err := repo.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "gadget", p.Name)
	assert.Equal(t, 19.99, p.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetProducts_FilterByCategory(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Name: "gadget", Description: "x", Price: 1, CategoryID: 1},
		models.Product{Name: "widget", Description: "y", Price: 2, CategoryID: 2},
		models.Product{Name: "gizmo", Description: "z", Price: 3, CategoryID: 1},
	)

	total, items, err := repo.GetProducts(context.Background(), ListFilter{CategoryID: 1}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "gadget", items[0].Name)
	assert.Equal(t, "gizmo", items[1].Name)
}

func TestGetProducts_SearchTerm(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Name: "Blue Gadget", Description: "shiny", Price: 1},
		models.Product{Name: "Red Widget", Description: "a GADGET holder", Price: 2},
		models.Product{Name: "Plain Box", Description: "cardboard", Price: 3},
	)

	total, items, err := repo.GetProducts(context.Background(), ListFilter{Search: "gadget"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestGetProducts_Pagination(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 5; i++ {
		seed(t, repo, models.Product{Name: "p", Description: "d", Price: 1})
	}

	total, items, err := repo.GetProducts(context.Background(), ListFilter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].ID)
}

func TestPatchProduct_PartialUpdate(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo, models.Product{Name: "gadget", Description: "old", Price: 19.99})

	price := 25.00
	p, err := repo.PatchProduct(context.Background(), PatchProductRequest{Price: &price}, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.00, p.Price)
	assert.Equal(t, "gadget", p.Name)
	assert.Equal(t, "old", p.Description)
}

func TestDeleteProduct(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo, models.Product{Name: "gadget", Description: "x", Price: 1})

	require.NoError(t, repo.DeleteProduct(context.Background(), 1))

	err := repo.DeleteProduct(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
