package models

import "gorm.io/gorm"

const CategoryKey = "category_id"

var CategoryKeys = []string{
	"category_id",
	"category_name",
	"description",
	"created_at",
	"updated_at",
}

type Category struct {
	CategoryID   string `gorm:"type:varchar(36);primaryKey" json:"category_id"`
	CategoryName string `gorm:"uniqueIndex;not null" json:"category_name"`
	Description  string `json:"description"`

	BaseModel
}

// TableName keeps gorm from guessing the plural.
func (Category) TableName() string { return "categories" }

func (c Category) Key() string { return c.CategoryID }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.CategoryID)
	return nil
}
