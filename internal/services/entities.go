package services

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/models"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/types"
)

type (
	Projects   = Service[models.Project, types.CreateProjectRequest, types.UpdateProjectRequest]
	Users      = Service[models.User, types.CreateUserRequest, types.UpdateUserRequest]
	Tasks      = Service[models.Task, types.CreateTaskRequest, types.UpdateTaskRequest]
	Resources  = Service[models.Resource, types.CreateResourceRequest, types.UpdateResourceRequest]
	Categories = Service[models.Category, types.CreateCategoryRequest, types.UpdateCategoryRequest]
)

func NewProjects(db *gorm.DB, logger zerolog.Logger) *Projects {
	repo := repository.New[models.Project](db, types.EntityProject, models.ProjectKey, models.ProjectKeys)

	return New(repo, Definition[models.Project, types.CreateProjectRequest, types.UpdateProjectRequest]{
		Name:        types.EntityProject,
		UniqueKey:   "project_name",
		UniqueValue: func(p *models.Project) string { return p.ProjectName },
		Build: func(req types.CreateProjectRequest) (*models.Project, error) {
			name, err := trimmed("project_name", req.ProjectName)
			if err != nil {
				return nil, err
			}
			return &models.Project{ProjectName: name}, nil
		},
		Patch: func(req types.UpdateProjectRequest) (map[string]any, error) {
			columns := map[string]any{}
			if req.ProjectName != nil {
				name, err := trimmed("project_name", *req.ProjectName)
				if err != nil {
					return nil, err
				}
				columns["project_name"] = name
			}
			return columns, nil
		},
	}, logger)
}

func NewUsers(users *repository.Users, logger zerolog.Logger) *Users {
	return New(users.Repository, Definition[models.User, types.CreateUserRequest, types.UpdateUserRequest]{
		Name:        types.EntityUser,
		UniqueKey:   "username",
		UniqueValue: func(u *models.User) string { return u.Username },
		Build: func(req types.CreateUserRequest) (*models.User, error) {
			username, err := trimmed("username", req.Username)
			if err != nil {
				return nil, err
			}
			role, err := trimmed("role", req.Role)
			if err != nil {
				return nil, err
			}
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				return nil, err
			}
			return &models.User{
				Username:  username,
				Password:  hash,
				Role:      role,
				ProjectID: optional(req.ProjectID),
			}, nil
		},
		Patch: func(req types.UpdateUserRequest) (map[string]any, error) {
			columns := map[string]any{}
			if req.Username != nil {
				username, err := trimmed("username", *req.Username)
				if err != nil {
					return nil, err
				}
				columns["username"] = username
			}
			if req.Role != nil {
				role, err := trimmed("role", *req.Role)
				if err != nil {
					return nil, err
				}
				columns["role"] = role
			}
			if req.Password != nil {
				if *req.Password == "" {
					return nil, errors.NotValidf("empty password")
				}
				hash, err := auth.HashPassword(*req.Password)
				if err != nil {
					return nil, err
				}
				columns["password"] = hash
			}
			if req.ProjectID != nil {
				columns["project_id"] = optional(req.ProjectID)
			}
			return columns, nil
		},
	}, logger)
}

func NewTasks(db *gorm.DB, logger zerolog.Logger) *Tasks {
	repo := repository.New[models.Task](db, types.EntityTask, models.TaskKey, models.TaskKeys)

	return New(repo, Definition[models.Task, types.CreateTaskRequest, types.UpdateTaskRequest]{
		Name: types.EntityTask,
		Build: func(req types.CreateTaskRequest) (*models.Task, error) {
			name, err := trimmed("task_name", req.TaskName)
			if err != nil {
				return nil, err
			}
			if err := checkDates(req.StartDate, req.EndDate); err != nil {
				return nil, err
			}
			status := req.Status
			if status == "" {
				status = models.TaskPending
			}
			return &models.Task{
				TaskName:    name,
				Description: req.Description,
				Status:      status,
				Budget:      req.Budget,
				StartDate:   req.StartDate,
				EndDate:     req.EndDate,
				ProjectID:   optional(req.ProjectID),
				Metadata:    metadata(req.Metadata),
			}, nil
		},
		Patch: func(req types.UpdateTaskRequest) (map[string]any, error) {
			columns := map[string]any{}
			if req.TaskName != nil {
				name, err := trimmed("task_name", *req.TaskName)
				if err != nil {
					return nil, err
				}
				columns["task_name"] = name
			}
			if req.Description != nil {
				columns["description"] = *req.Description
			}
			if req.Status != nil {
				columns["status"] = *req.Status
			}
			if req.Budget != nil {
				columns["budget"] = *req.Budget
			}
			if req.StartDate != nil {
				columns["start_date"] = *req.StartDate
			}
			if req.EndDate != nil {
				columns["end_date"] = *req.EndDate
			}
			if req.ProjectID != nil {
				columns["project_id"] = optional(req.ProjectID)
			}
			if len(req.Metadata) > 0 {
				columns["metadata"] = metadata(req.Metadata)
			}
			return columns, nil
		},
		Check: func(current *models.Task, columns map[string]any) error {
			start, end := current.StartDate, current.EndDate
			if v, ok := columns["start_date"].(time.Time); ok {
				start = &v
			}
			if v, ok := columns["end_date"].(time.Time); ok {
				end = &v
			}
			return checkDates(start, end)
		},
	}, logger)
}

func NewResources(db *gorm.DB, logger zerolog.Logger) *Resources {
	repo := repository.New[models.Resource](db, types.EntityResource, models.ResourceKey, models.ResourceKeys)

	return New(repo, Definition[models.Resource, types.CreateResourceRequest, types.UpdateResourceRequest]{
		Name:        types.EntityResource,
		UniqueKey:   "resource_name",
		UniqueValue: func(r *models.Resource) string { return r.ResourceName },
		Build: func(req types.CreateResourceRequest) (*models.Resource, error) {
			name, err := trimmed("resource_name", req.ResourceName)
			if err != nil {
				return nil, err
			}
			kind, err := trimmed("resource_type", req.ResourceType)
			if err != nil {
				return nil, err
			}
			if req.Cost == nil || req.Total == nil || req.Quantity == nil {
				return nil, errors.NotValidf("missing cost, total or quantity")
			}
			return &models.Resource{
				ResourceName: name,
				ResourceType: kind,
				Cost:         *req.Cost,
				Total:        *req.Total,
				Quantity:     *req.Quantity,
				CreatedBy:    optional(req.CreatedBy),
			}, nil
		},
		Patch: func(req types.UpdateResourceRequest) (map[string]any, error) {
			columns := map[string]any{}
			if req.ResourceName != nil {
				name, err := trimmed("resource_name", *req.ResourceName)
				if err != nil {
					return nil, err
				}
				columns["resource_name"] = name
			}
			if req.ResourceType != nil {
				kind, err := trimmed("resource_type", *req.ResourceType)
				if err != nil {
					return nil, err
				}
				columns["resource_type"] = kind
			}
			if req.Cost != nil {
				columns["cost"] = *req.Cost
			}
			if req.Total != nil {
				columns["total"] = *req.Total
			}
			if req.Quantity != nil {
				columns["quantity"] = *req.Quantity
			}
			if req.UpdatedBy != nil {
				columns["updated_by"] = optional(req.UpdatedBy)
			}
			return columns, nil
		},
	}, logger)
}

func NewCategories(db *gorm.DB, logger zerolog.Logger) *Categories {
	repo := repository.New[models.Category](db, types.EntityCategory, models.CategoryKey, models.CategoryKeys)

	return New(repo, Definition[models.Category, types.CreateCategoryRequest, types.UpdateCategoryRequest]{
		Name:        types.EntityCategory,
		Plural:      "categories",
		UniqueKey:   "category_name",
		UniqueValue: func(c *models.Category) string { return c.CategoryName },
		Build: func(req types.CreateCategoryRequest) (*models.Category, error) {
			name, err := trimmed("category_name", req.CategoryName)
			if err != nil {
				return nil, err
			}
			return &models.Category{CategoryName: name, Description: req.Description}, nil
		},
		Patch: func(req types.UpdateCategoryRequest) (map[string]any, error) {
			columns := map[string]any{}
			if req.CategoryName != nil {
				name, err := trimmed("category_name", *req.CategoryName)
				if err != nil {
					return nil, err
				}
				columns["category_name"] = name
			}
			if req.Description != nil {
				columns["description"] = *req.Description
			}
			return columns, nil
		},
	}, logger)
}

func checkDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return errors.NotValidf("end_date before start_date")
	}
	return nil
}

// metadata stores an absent or JSON null document as SQL NULL.
func metadata(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return datatypes.JSON(raw)
}
