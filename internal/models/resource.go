package models

import "gorm.io/gorm"

const ResourceKey = "resource_id"

var ResourceKeys = []string{
	"resource_id",
	"resource_name",
	"resource_type",
	"cost",
	"total",
	"quantity",
	"created_at",
	"created_by",
	"updated_at",
	"updated_by",
}

type Resource struct {
	ResourceID   string  `gorm:"type:varchar(36);primaryKey" json:"resource_id"`
	ResourceName string  `gorm:"uniqueIndex;not null" json:"resource_name"`
	ResourceType string  `gorm:"not null" json:"resource_type"`
	Cost         float64 `gorm:"not null" json:"cost"`
	Total        float64 `gorm:"not null" json:"total"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	CreatedBy    *string `json:"created_by"`
	UpdatedBy    *string `json:"updated_by"`

	BaseModel
}

func (r Resource) Key() string { return r.ResourceID }

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ResourceID)
	return nil
}
