package adminapi

import (
	"errors"
	"net/http"

	"github.com/electrozone/productservice/internal/domain"
	"github.com/electrozone/productservice/internal/repository"
	"github.com/labstack/echo/v4"
)

type categoryPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

type categoryUpdatePayload struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// CategoryAPI exposes category CRUD endpoints
type CategoryAPI struct {
	categories repository.CategoryRepository
}

func NewCategoryAPI(categories repository.CategoryRepository) *CategoryAPI {
	return &CategoryAPI{categories: categories}
}

// Register registers category CRUD routes
func (h *CategoryAPI) Register(e *echo.Echo) {
	e.POST("/categories", h.createCategory)
	e.GET("/categories", h.listCategories)
	e.GET("/categories/:id", h.getCategory)
	e.PUT("/categories/:id", h.updateCategory)
	e.DELETE("/categories/:id", h.deleteCategory)
}

func (h *CategoryAPI) listCategories(c echo.Context) error {
	skip, limit := parsePagination(c)
	categories, err := h.categories.List(c.Request().Context(), skip, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", nil)
	}
	return ok(c, categories)
}

func (h *CategoryAPI) getCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	category, err := h.categories.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", nil)
	}
	return ok(c, category)
}

func (h *CategoryAPI) createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if fields := validatePayload(c, &payload); fields != nil {
		return failValidation(c, fields)
	}

	// Uniqueness is enforced here; the unique index is only a backstop.
	ctx := c.Request().Context()
	_, err := h.categories.GetByName(ctx, payload.Name)
	if err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_CATEGORY", "Category already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", nil)
	}

	category := domain.Category{
		Name:        payload.Name,
		Description: payload.Description,
	}
	if err := h.categories.Create(ctx, &category); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", nil)
	}
	return created(c, category)
}

func (h *CategoryAPI) updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var payload categoryUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if fields := validatePayload(c, &payload); fields != nil {
		return failValidation(c, fields)
	}

	category, err := h.categories.Update(c.Request().Context(), id, repository.CategoryPatch{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", nil)
	}
	return ok(c, category)
}

func (h *CategoryAPI) deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	// Restrict policy: a category still referenced by products is not
	// deletable, so no product is ever orphaned.
	ctx := c.Request().Context()
	count, err := h.categories.CountProducts(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category products", nil)
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "CATEGORY_NOT_EMPTY", "Category still has products", nil)
	}

	if err := h.categories.Delete(ctx, id); errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
