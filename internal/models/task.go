package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const TaskKey = "task_id"

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

var TaskKeys = []string{
	"task_id",
	"task_name",
	"description",
	"status",
	"budget",
	"start_date",
	"end_date",
	"project_id",
	"metadata",
	"created_at",
	"updated_at",
}

type Task struct {
	TaskID      string         `gorm:"type:varchar(36);primaryKey" json:"task_id"`
	TaskName    string         `gorm:"not null" json:"task_name"`
	Description string         `json:"description"`
	Status      string         `gorm:"not null" json:"status"`
	Budget      float64        `json:"budget"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	ProjectID   *string        `gorm:"type:varchar(36);index" json:"project_id"`
	Metadata    datatypes.JSON `json:"metadata"` // free-form attributes set by the admin UI

	BaseModel

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (t Task) Key() string { return t.TaskID }

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.TaskID)
	return nil
}
