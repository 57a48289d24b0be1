package types

import (
	"encoding/json"
	"time"
)

// Request bodies and path parameters. The binding tags are the validation
// schema; update requests use pointers so absent fields stay untouched.

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CreateProjectRequest struct {
	ProjectName string `json:"project_name" form:"project_name" binding:"required,max=255"`
}

type UpdateProjectRequest struct {
	ProjectID   string  `json:"project_id" form:"project_id" binding:"required,uuid"`
	ProjectName *string `json:"project_name" form:"project_name" binding:"omitempty,max=255"`
}

type ProjectURI struct {
	ProjectID string `uri:"project_id" binding:"required,uuid"`
}

type CreateUserRequest struct {
	Username  string  `json:"username" form:"username" binding:"required,max=64"`
	Password  string  `json:"password" form:"password" binding:"required,min=6,max=72"`
	Role      string  `json:"role" form:"role" binding:"required,max=32"`
	ProjectID *string `json:"project_id" form:"project_id" binding:"omitempty,uuid|len=0"`
}

type UpdateUserRequest struct {
	UserID    string  `json:"user_id" form:"user_id" binding:"required,uuid"`
	Username  *string `json:"username" form:"username" binding:"omitempty,max=64"`
	Password  *string `json:"password" form:"password" binding:"omitempty,min=6,max=72"`
	Role      *string `json:"role" form:"role" binding:"omitempty,max=32"`
	ProjectID *string `json:"project_id" form:"project_id" binding:"omitempty,uuid|len=0"`
}

type UserURI struct {
	UserID string `uri:"user_id" binding:"required,uuid"`
}

type CreateTaskRequest struct {
	TaskName    string          `json:"task_name" form:"task_name" binding:"required,max=255"`
	Description string          `json:"description" form:"description"`
	Status      string          `json:"status" form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Budget      float64         `json:"budget" form:"budget" binding:"gte=0"`
	StartDate   *time.Time      `json:"start_date" form:"start_date"`
	EndDate     *time.Time      `json:"end_date" form:"end_date"`
	ProjectID   *string         `json:"project_id" form:"project_id" binding:"omitempty,uuid|len=0"`
	Metadata    json.RawMessage `json:"metadata" form:"-"`
}

type UpdateTaskRequest struct {
	TaskID      string          `json:"task_id" form:"task_id" binding:"required,uuid"`
	TaskName    *string         `json:"task_name" form:"task_name" binding:"omitempty,max=255"`
	Description *string         `json:"description" form:"description"`
	Status      *string         `json:"status" form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Budget      *float64        `json:"budget" form:"budget" binding:"omitempty,gte=0"`
	StartDate   *time.Time      `json:"start_date" form:"start_date"`
	EndDate     *time.Time      `json:"end_date" form:"end_date"`
	ProjectID   *string         `json:"project_id" form:"project_id" binding:"omitempty,uuid|len=0"`
	Metadata    json.RawMessage `json:"metadata" form:"-"`
}

type TaskURI struct {
	TaskID string `uri:"task_id" binding:"required,uuid"`
}

type CreateResourceRequest struct {
	ResourceName string   `json:"resource_name" form:"resource_name" binding:"required,max=255"`
	ResourceType string   `json:"resource_type" form:"resource_type" binding:"required,max=100"`
	Cost         *float64 `json:"cost" form:"cost" binding:"required,gte=0"`
	Total        *float64 `json:"total" form:"total" binding:"required,gte=0"`
	Quantity     *int     `json:"quantity" form:"quantity" binding:"required,gte=0"`
	CreatedBy    *string  `json:"created_by" form:"created_by" binding:"omitempty,max=255"`
}

type UpdateResourceRequest struct {
	ResourceID   string   `json:"resource_id" form:"resource_id" binding:"required,uuid"`
	ResourceName *string  `json:"resource_name" form:"resource_name" binding:"omitempty,max=255"`
	ResourceType *string  `json:"resource_type" form:"resource_type" binding:"omitempty,max=100"`
	Cost         *float64 `json:"cost" form:"cost" binding:"omitempty,gte=0"`
	Total        *float64 `json:"total" form:"total" binding:"omitempty,gte=0"`
	Quantity     *int     `json:"quantity" form:"quantity" binding:"omitempty,gte=0"`
	UpdatedBy    *string  `json:"updated_by" form:"updated_by" binding:"omitempty,max=255"`
}

type ResourceURI struct {
	ResourceID string `uri:"resource_id" binding:"required,uuid"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" form:"category_name" binding:"required,max=255"`
	Description  string `json:"description" form:"description"`
}

type UpdateCategoryRequest struct {
	CategoryID   string  `json:"category_id" form:"category_id" binding:"required,uuid"`
	CategoryName *string `json:"category_name" form:"category_name" binding:"omitempty,max=255"`
	Description  *string `json:"description" form:"description"`
}

type CategoryURI struct {
	CategoryID string `uri:"category_id" binding:"required,uuid"`
}
