package adminapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/electrozone/productservice/internal/domain"
	"github.com/electrozone/productservice/internal/repository"
	"github.com/labstack/echo/v4"
)

type productPayload struct {
	Name           string            `json:"name" validate:"required,min=1,max=255"`
	Description    string            `json:"description"`
	Price          float64           `json:"price" validate:"required,gt=0"`
	StockQuantity  int               `json:"stock_quantity" validate:"gte=0"`
	Brand          string            `json:"brand" validate:"omitempty,max=100"`
	CategoryID     int64             `json:"category_id" validate:"required,gt=0"`
	Specifications domain.Attributes `json:"specifications"`
	ImageURL       string            `json:"image_url" validate:"omitempty,max=500"`
}

type productUpdatePayload struct {
	Name           *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string            `json:"description"`
	Price          *float64           `json:"price" validate:"omitempty,gt=0"`
	StockQuantity  *int               `json:"stock_quantity" validate:"omitempty,gte=0"`
	Brand          *string            `json:"brand" validate:"omitempty,max=100"`
	CategoryID     *int64             `json:"category_id" validate:"omitempty,gt=0"`
	Specifications *domain.Attributes `json:"specifications"`
	ImageURL       *string            `json:"image_url" validate:"omitempty,max=500"`
}

// ProductAPI exposes product CRUD and stock endpoints
type ProductAPI struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductAPI(products repository.ProductRepository, categories repository.CategoryRepository) *ProductAPI {
	return &ProductAPI{products: products, categories: categories}
}

// Register registers product routes. Static segments are registered before
// the catch-all :id route.
func (h *ProductAPI) Register(e *echo.Echo) {
	e.POST("/products", h.createProduct)
	e.GET("/products", h.listProducts)
	e.GET("/products/category/:id", h.listProductsByCategory)
	e.GET("/products/brand/:brand", h.listProductsByBrand)
	e.GET("/products/search", h.searchProducts)
	e.GET("/products/stock/available", h.listProductsInStock)
	e.GET("/products/:id", h.getProduct)
	e.PUT("/products/:id", h.updateProduct)
	e.PATCH("/products/:id/stock", h.setProductStock)
	e.PATCH("/products/:id/stock/decrease", h.decreaseProductStock)
	e.DELETE("/products/:id", h.deleteProduct)
}

func (h *ProductAPI) listProducts(c echo.Context) error {
	skip, limit := parsePagination(c)
	products, err := h.products.List(c.Request().Context(), skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func (h *ProductAPI) listProductsByCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	skip, limit := parsePagination(c)
	products, err := h.products.ListByCategory(c.Request().Context(), id, skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func (h *ProductAPI) listProductsByBrand(c echo.Context) error {
	skip, limit := parsePagination(c)
	products, err := h.products.ListByBrand(c.Request().Context(), c.Param("brand"), skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func (h *ProductAPI) searchProducts(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return failValidation(c, []fieldError{{Field: "q", Reason: "failed constraint: required"}})
	}
	skip, limit := parsePagination(c)
	products, err := h.products.Search(c.Request().Context(), term, skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search products", nil)
	}
	return ok(c, products)
}

func (h *ProductAPI) listProductsInStock(c echo.Context) error {
	skip, limit := parsePagination(c)
	products, err := h.products.ListInStock(c.Request().Context(), skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func (h *ProductAPI) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := h.products.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, product)
}

func (h *ProductAPI) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if fields := validatePayload(c, &payload); fields != nil {
		return failValidation(c, fields)
	}

	// The referenced category must exist before the product is persisted.
	ctx := c.Request().Context()
	if _, err := h.categories.GetByID(ctx, payload.CategoryID); errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusBadRequest, "CATEGORY_NOT_FOUND", "Category does not exist", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", nil)
	}

	product := domain.Product{
		Name:           payload.Name,
		Description:    payload.Description,
		Price:          payload.Price,
		StockQuantity:  payload.StockQuantity,
		Brand:          payload.Brand,
		CategoryID:     payload.CategoryID,
		Specifications: payload.Specifications,
		ImageURL:       payload.ImageURL,
	}
	if err := h.products.Create(ctx, &product); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}

	fresh, err := h.products.GetByID(ctx, product.ID)
	if err != nil {
		return created(c, product)
	}
	return created(c, fresh)
}

func (h *ProductAPI) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if fields := validatePayload(c, &payload); fields != nil {
		return failValidation(c, fields)
	}

	ctx := c.Request().Context()
	if payload.CategoryID != nil {
		if _, err := h.categories.GetByID(ctx, *payload.CategoryID); errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "CATEGORY_NOT_FOUND", "Category does not exist", nil)
		} else if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", nil)
		}
	}

	product, err := h.products.Update(ctx, id, repository.ProductPatch{
		Name:           payload.Name,
		Description:    payload.Description,
		Price:          payload.Price,
		StockQuantity:  payload.StockQuantity,
		Brand:          payload.Brand,
		CategoryID:     payload.CategoryID,
		Specifications: payload.Specifications,
		ImageURL:       payload.ImageURL,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	return ok(c, product)
}

func (h *ProductAPI) setProductStock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil || quantity < 0 {
		return failValidation(c, []fieldError{{Field: "quantity", Reason: "failed constraint: gte=0"}})
	}

	product, err := h.products.SetStock(c.Request().Context(), id, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update stock", nil)
	}
	return ok(c, map[string]interface{}{
		"message":      "Stock updated successfully",
		"product_id":   id,
		"new_quantity": product.StockQuantity,
	})
}

func (h *ProductAPI) decreaseProductStock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	qty, err := strconv.Atoi(c.QueryParam("qty"))
	if err != nil || qty <= 0 {
		return failValidation(c, []fieldError{{Field: "qty", Reason: "failed constraint: gt=0"}})
	}

	product, err := h.products.DecreaseStock(c.Request().Context(), id, qty)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	case errors.Is(err, repository.ErrInsufficientStock):
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Insufficient stock", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to decrease stock", nil)
	}
	return ok(c, map[string]interface{}{
		"message":      "Stock decreased successfully",
		"product_id":   id,
		"new_quantity": product.StockQuantity,
	})
}

func (h *ProductAPI) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := h.products.Delete(c.Request().Context(), id); errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
