package models

import "gorm.io/gorm"

const ProjectKey = "project_id"

var ProjectKeys = []string{
	"project_id",
	"project_name",
	"created_at",
	"updated_at",
}

type Project struct {
	ProjectID   string `gorm:"type:varchar(36);primaryKey" json:"project_id"`
	ProjectName string `gorm:"uniqueIndex;not null" json:"project_name"`

	BaseModel
}

func (p Project) Key() string { return p.ProjectID }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ProjectID)
	return nil
}
