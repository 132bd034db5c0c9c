package services_test

import (
	"testing"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
	"freshcart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_CRUD(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	product := &models.Product{
		Title:    "Cold Brew Concentrate",
		Category: "drinks",
		Brand:    "Brewline",
		Price:    14.50,
		Quantity: 30,
	}
	require.NoError(t, svc.CreateProduct(product))
	assert.NotEmpty(t, product.ID, "create assigns an ID when none is given")

	fetched, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cold Brew Concentrate", fetched.Title)

	fetched.Price = 12.00
	require.NoError(t, svc.UpdateProduct(fetched))
	updated, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.00, updated.Price)

	all, err := svc.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteProduct(product.ID))
	_, err = svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_NotFound(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	_, err := svc.GetProductByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = svc.UpdateProduct(&models.Product{ID: "missing", Title: "Ghost", Category: "none", Price: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = svc.DeleteProduct("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
