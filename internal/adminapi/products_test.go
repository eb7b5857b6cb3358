package adminapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/electrozone/productservice/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, e *echo.Echo, name string) domain.Category {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/categories", map[string]interface{}{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category domain.Category
	decodeBody(t, rec, &category)
	return category
}

func createTestProduct(t *testing.T, e *echo.Echo, categoryID int64, name string, stock int) domain.Product {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/products", map[string]interface{}{
		"name":           name,
		"description":    "test product",
		"price":          100.0,
		"stock_quantity": stock,
		"brand":          "Acme",
		"category_id":    categoryID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var product domain.Product
	decodeBody(t, rec, &product)
	return product
}

func TestCreateProduct(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")

	rec := doJSON(t, e, http.MethodPost, "/products", map[string]interface{}{
		"name":           "iPhone 15 Pro",
		"description":    "Apple flagship",
		"price":          999.0,
		"stock_quantity": 10,
		"brand":          "Apple",
		"category_id":    category.ID,
		"specifications": map[string]string{"RAM": "8GB", "Storage": "256GB"},
		"image_url":      "https://img.example.com/iphone.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var product domain.Product
	decodeBody(t, rec, &product)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "iPhone 15 Pro", product.Name)
	assert.Equal(t, "8GB", product.Specifications["RAM"])
	require.NotNil(t, product.Category)
	assert.Equal(t, "Phones", product.Category.Name)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestCreateProductUnknownCategory(t *testing.T) {
	e, db := setupServer(t)

	rec := doJSON(t, e, http.MethodPost, "/products", map[string]interface{}{
		"name":        "Orphan",
		"price":       10.0,
		"category_id": 99999,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp errorResponse
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "CATEGORY_NOT_FOUND", errResp.Code)

	// nothing persisted
	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateProductValidation(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"zero price", map[string]interface{}{
			"name": "x", "price": 0.0, "category_id": category.ID,
		}},
		{"negative price", map[string]interface{}{
			"name": "x", "price": -5.0, "category_id": category.ID,
		}},
		{"negative stock", map[string]interface{}{
			"name": "x", "price": 5.0, "stock_quantity": -1, "category_id": category.ID,
		}},
		{"missing name", map[string]interface{}{
			"price": 5.0, "category_id": category.ID,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/products", tc.payload)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var errResp errorResponse
			decodeBody(t, rec, &errResp)
			assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
		})
	}
}

func TestGetProduct(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	product := createTestProduct(t, e, category.ID, "Galaxy S24", 5)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var found domain.Product
	decodeBody(t, rec, &found)
	assert.Equal(t, product.ID, found.ID)

	rec = doJSON(t, e, http.MethodGet, "/products/99999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsPagination(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	for i := 0; i < 8; i++ {
		createTestProduct(t, e, category.ID, fmt.Sprintf("product-%d", i), 1)
	}

	rec := doJSON(t, e, http.MethodGet, "/products?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeBody(t, rec, &products)
	assert.Len(t, products, 5)

	rec = doJSON(t, e, http.MethodGet, "/products?skip=5&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &products)
	assert.Len(t, products, 3)
}

func TestListProductsByCategoryAndBrand(t *testing.T) {
	e, _ := setupServer(t)
	phones := createTestCategory(t, e, "Phones")
	laptops := createTestCategory(t, e, "Laptops")
	createTestProduct(t, e, phones.ID, "Galaxy S24", 5)
	createTestProduct(t, e, laptops.ID, "XPS 13", 5)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/products/category/%d", phones.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeBody(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Galaxy S24", products[0].Name)

	rec = doJSON(t, e, http.MethodGet, "/products/brand/Acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &products)
	assert.Len(t, products, 2)

	rec = doJSON(t, e, http.MethodGet, "/products/brand/Nokia", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &products)
	assert.Len(t, products, 0)
}

func TestSearchProducts(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	createTestProduct(t, e, category.ID, "iPhone 15 Pro", 5)
	createTestProduct(t, e, category.ID, "Galaxy S24", 5)

	for _, term := range []string{"iPhone", "iphone"} {
		rec := doJSON(t, e, http.MethodGet, "/products/search?q="+term, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var products []domain.Product
		decodeBody(t, rec, &products)
		require.Len(t, products, 1, "term %q", term)
		assert.Equal(t, "iPhone 15 Pro", products[0].Name)
	}

	rec := doJSON(t, e, http.MethodGet, "/products/search", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListProductsInStock(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	createTestProduct(t, e, category.ID, "Galaxy S24", 5)
	createTestProduct(t, e, category.ID, "Pixel 9", 0)

	rec := doJSON(t, e, http.MethodGet, "/products/stock/available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decodeBody(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Galaxy S24", products[0].Name)
}

func TestUpdateProductPartial(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	product := createTestProduct(t, e, category.ID, "Galaxy S24", 5)

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"price": 799.0})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Product
	decodeBody(t, rec, &updated)
	assert.Equal(t, 799.0, updated.Price)
	assert.Equal(t, "Galaxy S24", updated.Name)
	assert.Equal(t, "test product", updated.Description)
	assert.Equal(t, 5, updated.StockQuantity)

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"price": -1.0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"category_id": int64(99999)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/products/99999", map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetProductStock(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	product := createTestProduct(t, e, category.ID, "Galaxy S24", 5)

	rec := doJSON(t, e, http.MethodPatch, fmt.Sprintf("/products/%d/stock?quantity=42", product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.EqualValues(t, 42, resp["new_quantity"])

	rec = doJSON(t, e, http.MethodPatch, fmt.Sprintf("/products/%d/stock?quantity=-1", product.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, e, http.MethodPatch, "/products/99999/stock?quantity=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDecreaseProductStock(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	product := createTestProduct(t, e, category.ID, "Galaxy S24", 10)

	rec := doJSON(t, e, http.MethodPatch, fmt.Sprintf("/products/%d/stock/decrease?qty=4", product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.EqualValues(t, 6, resp["new_quantity"])

	rec = doJSON(t, e, http.MethodPatch, fmt.Sprintf("/products/%d/stock/decrease?qty=20", product.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp errorResponse
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	// quantity unchanged after the failed decrease
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fresh domain.Product
	decodeBody(t, rec, &fresh)
	assert.Equal(t, 6, fresh.StockQuantity)

	rec = doJSON(t, e, http.MethodPatch, "/products/99999/stock/decrease?qty=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	e, _ := setupServer(t)
	category := createTestCategory(t, e, "Phones")
	product := createTestProduct(t, e, category.ID, "Galaxy S24", 5)

	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
