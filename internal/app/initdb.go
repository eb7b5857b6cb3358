package app

import (
	"github.com/electrozone/productservice/internal/domain"
	"go.uber.org/zap"
)

// checkCategories initializes the demo category set
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Phones", Description: "Smartphones and feature phones"},
		{Name: "Laptops", Description: "Notebooks and ultrabooks"},
		{Name: "Tablets", Description: "Tablets and e-readers"},
		{Name: "Accessories", Description: "Chargers, cases and cables"},
	}

	for _, c := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&c).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", c.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", c.Name))
			}
		}
	}
}

// checkProducts initializes demo products referencing the demo categories
func (a *Application) checkProducts() {
	categoryID := func(name string) int64 {
		var c domain.Category
		if err := a.gormDB.Where("name = ?", name).First(&c).Error; err != nil {
			return 0
		}
		return c.ID
	}

	defaultProducts := []domain.Product{
		{
			Name:          "iPhone 15 Pro",
			Description:   "Apple flagship smartphone",
			Price:         999.00,
			StockQuantity: 50,
			Brand:         "Apple",
			CategoryID:    categoryID("Phones"),
			Specifications: domain.Attributes{
				"RAM":     "8GB",
				"Storage": "256GB",
			},
		},
		{
			Name:          "Galaxy S24",
			Description:   "Samsung flagship smartphone",
			Price:         849.00,
			StockQuantity: 40,
			Brand:         "Samsung",
			CategoryID:    categoryID("Phones"),
			Specifications: domain.Attributes{
				"RAM":     "12GB",
				"Storage": "256GB",
			},
		},
		{
			Name:          "MacBook Air M3",
			Description:   "Thin and light notebook",
			Price:         1299.00,
			StockQuantity: 25,
			Brand:         "Apple",
			CategoryID:    categoryID("Laptops"),
			Specifications: domain.Attributes{
				"RAM":     "16GB",
				"Storage": "512GB",
			},
		},
		{
			Name:          "XPS 13",
			Description:   "Dell compact ultrabook",
			Price:         1099.00,
			StockQuantity: 15,
			Brand:         "Dell",
			CategoryID:    categoryID("Laptops"),
		},
		{
			Name:          "USB-C Charger 65W",
			Description:   "Universal fast charger",
			Price:         39.90,
			StockQuantity: 200,
			Brand:         "Anker",
			CategoryID:    categoryID("Accessories"),
		},
	}

	for _, p := range defaultProducts {
		if p.CategoryID == 0 {
			continue
		}
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
