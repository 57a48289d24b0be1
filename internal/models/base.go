package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel carries the audit timestamps every table has. Both are stamped
// by gorm from the configured NowFunc.
type BaseModel struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Record is implemented by every model served through a repository.
type Record interface {
	Key() string
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All lists the models to migrate, parents first.
func All() []any {
	return []any{
		&Project{},
		&Category{},
		&User{},
		&Task{},
		&Resource{},
	}
}
