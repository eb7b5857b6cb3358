package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/electrozone/productservice/internal/domain"
	"gorm.io/gorm"
)

// ProductPatch carries the fields of a partial product update. Nil fields
// are left untouched.
type ProductPatch struct {
	Name           *string
	Description    *string
	Price          *float64
	StockQuantity  *int
	Brand          *string
	CategoryID     *int64
	Specifications *domain.Attributes
	ImageURL       *string
}

// ProductRepository handles database operations for products
type ProductRepository interface {
	// GetByID retrieves a product by ID with its category summary
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List retrieves products with offset/limit pagination
	List(ctx context.Context, skip, limit int) ([]domain.Product, error)

	// ListByCategory retrieves products belonging to a category
	ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]domain.Product, error)

	// ListByBrand retrieves products of a brand
	ListByBrand(ctx context.Context, brand string, skip, limit int) ([]domain.Product, error)

	// Search matches the term case-insensitively against name or description
	Search(ctx context.Context, term string, skip, limit int) ([]domain.Product, error)

	// ListInStock retrieves products with stock_quantity > 0
	ListInStock(ctx context.Context, skip, limit int) ([]domain.Product, error)

	// Create inserts a new product and fills in the generated ID
	Create(ctx context.Context, product *domain.Product) error

	// Update applies a partial update and returns the fresh record
	Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)

	// SetStock overwrites the stock quantity and returns the fresh record
	SetStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)

	// DecreaseStock atomically decrements stock if sufficient stock remains.
	// Returns ErrInsufficientStock when the product exists but holds less
	// than the requested quantity.
	DecreaseStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)

	// Delete removes a product by ID
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) list(ctx context.Context, skip, limit int, scope func(*gorm.DB) *gorm.DB) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	err := scope(r.db.WithContext(ctx).Preload("Category")).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) List(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	return r.list(ctx, skip, limit, func(db *gorm.DB) *gorm.DB {
		return db
	})
}

func (r *GormProductRepository) ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]domain.Product, error) {
	return r.list(ctx, skip, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	})
}

func (r *GormProductRepository) ListByBrand(ctx context.Context, brand string, skip, limit int) ([]domain.Product, error) {
	return r.list(ctx, skip, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("brand = ?", brand)
	})
}

func (r *GormProductRepository) Search(ctx context.Context, term string, skip, limit int) ([]domain.Product, error) {
	return r.list(ctx, skip, limit, func(db *gorm.DB) *gorm.DB {
		if strings.EqualFold(r.db.Name(), "postgres") {
			pattern := "%" + term + "%"
			return db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
		}
		pattern := "%" + strings.ToLower(term) + "%"
		return db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	})
}

func (r *GormProductRepository) ListInStock(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	return r.list(ctx, skip, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("stock_quantity > 0")
	})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.StockQuantity != nil {
		updates["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Brand != nil {
		updates["brand"] = *patch.Brand
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Specifications != nil {
		updates["specifications"] = *patch.Specifications
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		res := r.db.WithContext(ctx).
			Model(&domain.Product{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *GormProductRepository) SetStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": quantity,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DecreaseStock performs the sufficiency check and the decrement in a single
// conditional UPDATE so concurrent orders cannot oversell.
func (r *GormProductRepository) DecreaseStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&domain.Product{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrInsufficientStock
	}
	return r.GetByID(ctx, id)
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
