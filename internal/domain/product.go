package domain

import "time"

// Product represents a catalog item, e.g. "iPhone 15 Pro".
// Specifications carries free-form attributes such as {"RAM": "8GB"}.
type Product struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id" form:"id"`
	Name           string     `gorm:"size:255;not null;index" json:"name" form:"name"`
	Description    string     `gorm:"type:text" json:"description" form:"description"`
	Price          float64    `gorm:"not null" json:"price" form:"price"`
	StockQuantity  int        `gorm:"not null;default:0" json:"stock_quantity" form:"stock_quantity"`
	Brand          string     `gorm:"size:100;index" json:"brand" form:"brand"`
	CategoryID     int64      `gorm:"not null;index" json:"category_id" form:"category_id"`
	Specifications Attributes `gorm:"type:json" json:"specifications,omitempty"`
	ImageURL       string     `gorm:"size:500" json:"image_url" form:"image_url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
