package dialog

import (
	"context"

	"github.com/juju/errors"

	"github.com/monocle-dev/opsdesk/internal/client"
	"github.com/monocle-dev/opsdesk/internal/types"
)

var createFields = map[string][]Field{
	types.EntityProject: {
		{Name: "project_name", Required: true},
	},
	types.EntityUser: {
		{Name: "username", Required: true},
		{Name: "password", Required: true},
		{Name: "role", Required: true},
		{Name: "project_id"},
	},
	types.EntityTask: {
		{Name: "task_name", Required: true},
		{Name: "description"},
		{Name: "status"},
		{Name: "budget", Kind: Number},
		{Name: "start_date"},
		{Name: "end_date"},
		{Name: "project_id"},
	},
	types.EntityResource: {
		{Name: "resource_name", Required: true},
		{Name: "resource_type", Required: true},
		{Name: "cost", Kind: Number, Required: true},
		{Name: "total", Kind: Number, Required: true},
		{Name: "quantity", Kind: Integer, Required: true},
		{Name: "created_by"},
	},
	types.EntityCategory: {
		{Name: "category_name", Required: true},
		{Name: "description"},
	},
}

// Fields returns the create fields of entity, or the update fields: the id
// followed by every create field made optional.
func Fields(entity string, update bool) ([]Field, error) {
	fields, ok := createFields[entity]
	if !ok {
		return nil, errors.NotFoundf("entity %q", entity)
	}
	if !update {
		return fields, nil
	}

	out := []Field{{Name: entity + "_id", Required: true}}
	for _, fd := range fields {
		fd.Required = false
		if fd.Name == "created_by" {
			fd.Name = "updated_by"
		}
		out = append(out, fd)
	}
	return out, nil
}

// CreateForm binds a create form to ec.Create.
func CreateForm(ec *client.EntityClient, refresh RefreshFunc) (*Form, error) {
	fields, err := Fields(ec.Name(), false)
	if err != nil {
		return nil, err
	}
	return New(fields, func(ctx context.Context, body map[string]any) (client.Response, error) {
		return ec.Create(ctx, body)
	}, refresh), nil
}

// UpdateForm binds an update form to ec.Update.
func UpdateForm(ec *client.EntityClient, refresh RefreshFunc) (*Form, error) {
	fields, err := Fields(ec.Name(), true)
	if err != nil {
		return nil, err
	}
	return New(fields, func(ctx context.Context, body map[string]any) (client.Response, error) {
		return ec.Update(ctx, body)
	}, refresh), nil
}
