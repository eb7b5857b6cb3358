package repository

import (
	"context"
	"errors"

	"github.com/electrozone/productservice/internal/domain"
	"gorm.io/gorm"
)

// CategoryPatch carries the fields of a partial category update. Nil fields
// are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// CategoryRepository handles database operations for categories
type CategoryRepository interface {
	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByName retrieves a category by its unique name
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List retrieves categories with offset/limit pagination
	List(ctx context.Context, skip, limit int) ([]domain.Category, error)

	// Create inserts a new category and fills in the generated ID
	Create(ctx context.Context, category *domain.Category) error

	// Update applies a partial update and returns the fresh record
	Update(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error)

	// Delete removes a category by ID
	Delete(ctx context.Context, id int64) error

	// CountProducts counts products referencing the category
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
}

// GormCategoryRepository is the GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM-based repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) List(ctx context.Context, skip, limit int) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GormCategoryRepository) Update(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&domain.Category{}).
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

func (r *GormCategoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCategoryRepository) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
