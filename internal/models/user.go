package models

import "gorm.io/gorm"

const UserKey = "user_id"

// UserKeys never includes the password column; only the login query reads it.
var UserKeys = []string{
	"user_id",
	"username",
	"role",
	"project_id",
	"created_at",
	"updated_at",
}

type User struct {
	UserID    string  `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Username  string  `gorm:"uniqueIndex;not null" json:"username"`
	Password  string  `gorm:"not null" json:"-"`
	Role      string  `gorm:"not null" json:"role"`
	ProjectID *string `gorm:"type:varchar(36);index" json:"project_id"`

	BaseModel

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (u User) Key() string { return u.UserID }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.UserID)
	return nil
}
