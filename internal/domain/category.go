package domain

// Category groups products into a named family, e.g. "Phones" or "Laptops".
// Name is unique across the catalog.
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id" form:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name" form:"name"`
	Description string `gorm:"type:text" json:"description" form:"description"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
