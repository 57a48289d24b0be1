package entity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/youta-t/flarc"

	"github.com/monocle-dev/opsdesk/cmd/opsdeskctl/subcommands/common"
	"github.com/monocle-dev/opsdesk/internal/client"
	"github.com/monocle-dev/opsdesk/internal/dialog"
	"github.com/monocle-dev/opsdesk/internal/models"
)

const (
	ARG_ID     = "ID"
	ARG_FIELDS = "FIELD=VALUE"
)

type FormFlag struct {
	Project string `flag:"project" help:"project name or id to attach the record to (users and tasks)"`
}

// New builds the command group managing one entity.
func New(entity string) (flarc.Command, error) {
	list, err := flarc.NewCommand(
		fmt.Sprintf("List every %s.", entity),
		struct{}{},
		flarc.Args{},
		common.NewTask(func(ctx context.Context, logger *log.Logger, c *client.Client, cl flarc.Commandline[struct{}], params []any) error {
			return List(ctx, c.Entity(entity), cl.Stdout())
		}),
	)
	if err != nil {
		return nil, err
	}

	show, err := flarc.NewCommand(
		fmt.Sprintf("Show one %s.", entity),
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: fmt.Sprintf("%s_id", entity)},
		},
		common.NewTask(func(ctx context.Context, logger *log.Logger, c *client.Client, cl flarc.Commandline[struct{}], params []any) error {
			return Show(ctx, c.Entity(entity), cl.Args()[ARG_ID][0], cl.Stdout())
		}),
	)
	if err != nil {
		return nil, err
	}

	fieldsHelp := func(update bool) string {
		fields, _ := dialog.Fields(entity, update)
		names := make([]string, 0, len(fields))
		for _, fd := range fields {
			name := fd.Name
			if fd.Required {
				name += "*"
			}
			names = append(names, name)
		}
		return "fields to set, as name=value. Fields: " + strings.Join(names, ", ") + " (* required)"
	}

	form := func(update bool) (flarc.Command, error) {
		verb := "Create"
		if update {
			verb = "Update"
		}
		return flarc.NewCommand(
			fmt.Sprintf("%s a %s.", verb, entity),
			FormFlag{},
			flarc.Args{
				{Name: ARG_FIELDS, Repeatable: true, Help: fieldsHelp(update)},
			},
			common.NewTask(func(ctx context.Context, logger *log.Logger, c *client.Client, cl flarc.Commandline[FormFlag], params []any) error {
				return Submit(ctx, logger, c, entity, update, cl.Flags().Project, cl.Args()[ARG_FIELDS], cl.Stdout())
			}),
			flarc.WithDescription(`
Required fields are checked before anything is sent. On success the
updated list is printed; otherwise the server's message is reported and
nothing is printed.
`),
		)
	}

	create, err := form(false)
	if err != nil {
		return nil, err
	}
	update, err := form(true)
	if err != nil {
		return nil, err
	}

	del, err := flarc.NewCommand(
		fmt.Sprintf("Delete a %s.", entity),
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: fmt.Sprintf("%s_id", entity)},
		},
		common.NewTask(func(ctx context.Context, logger *log.Logger, c *client.Client, cl flarc.Commandline[struct{}], params []any) error {
			return Delete(ctx, logger, c.Entity(entity), cl.Args()[ARG_ID][0])
		}),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		fmt.Sprintf("Manage %s records.", entity),
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("delete", del),
	)
}

func rejected(resp client.Response) error {
	return fmt.Errorf("%s (status code = %d)", resp.Message, resp.StatusCode)
}

func List(ctx context.Context, ec *client.EntityClient, stdout io.Writer) error {
	resp, err := ec.Get(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		return rejected(resp)
	}
	return common.Dump(stdout, resp.ResponseObject)
}

func Show(ctx context.Context, ec *client.EntityClient, id string, stdout io.Writer) error {
	resp, err := ec.Find(ctx, id)
	if err != nil {
		return err
	}
	if !resp.Success {
		return rejected(resp)
	}
	return common.Dump(stdout, resp.ResponseObject)
}

func Delete(ctx context.Context, logger *log.Logger, ec *client.EntityClient, id string) error {
	resp, err := ec.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !resp.Success {
		return rejected(resp)
	}
	logger.Println(resp.Message)
	return nil
}

// Submit fills the entity's form from name=value assignments and submits
// it. On success the entity is listed again.
func Submit(
	ctx context.Context,
	logger *log.Logger,
	c *client.Client,
	entity string,
	update bool,
	project string,
	assignments []string,
	stdout io.Writer,
) error {
	ec := c.Entity(entity)
	if ec == nil {
		return fmt.Errorf("unknown entity %q", entity)
	}

	refresh := func(ctx context.Context) error { return List(ctx, ec, stdout) }
	build := dialog.CreateForm
	if update {
		build = dialog.UpdateForm
	}
	form, err := build(ec, refresh)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("%q is not name=value", a))
		}
		if err := form.Set(name, value); err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}
	}

	if project != "" {
		id, err := ResolveProject(ctx, c, project)
		if err != nil {
			return err
		}
		if err := form.Set("project_id", id); err != nil {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("--project: %w", err))
		}
	}

	resp, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	logger.Println(resp.Message)
	return nil
}

// ResolveProject finds a project by id or by name.
func ResolveProject(ctx context.Context, c *client.Client, nameOrID string) (string, error) {
	resp, err := c.Projects.Get(ctx)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", rejected(resp)
	}

	var projects []models.Project
	if err := resp.Decode(&projects); err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ProjectID == nameOrID || p.ProjectName == nameOrID {
			return p.ProjectID, nil
		}
	}
	return "", fmt.Errorf("project %q not found", nameOrID)
}
