package login

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/youta-t/flarc"

	"github.com/monocle-dev/opsdesk/cmd/opsdeskctl/subcommands/common"
	"github.com/monocle-dev/opsdesk/internal/client"
	"github.com/monocle-dev/opsdesk/internal/types"
)

const (
	ARG_USERNAME = "USERNAME"
	ARG_PASSWORD = "PASSWORD"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Log in and print a bearer token.",
		struct{}{},
		flarc.Args{
			{Name: ARG_USERNAME, Required: true, Help: "user name"},
			{Name: ARG_PASSWORD, Required: true, Help: "password"},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Prints the issued token. Export it as `+common.EnvToken+` or pass it with
--token to the commands that need it.
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	c *client.Client,
	cl flarc.Commandline[struct{}],
	params []any,
) error {
	args := cl.Args()
	return Run(ctx, c, args[ARG_USERNAME][0], args[ARG_PASSWORD][0], cl.Stdout())
}

func Run(ctx context.Context, c *client.Client, username, password string, stdout io.Writer) error {
	resp, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("login failed: %s", resp.Message)
	}

	var issued types.LoginResponse
	if err := resp.Decode(&issued); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, issued.Token)
	return err
}
