package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/youta-t/flarc"

	"github.com/monocle-dev/opsdesk/cmd/opsdeskctl/subcommands/common"
	"github.com/monocle-dev/opsdesk/cmd/opsdeskctl/subcommands/entity"
	"github.com/monocle-dev/opsdesk/cmd/opsdeskctl/subcommands/login"
	"github.com/monocle-dev/opsdesk/internal/types"
)

func main() {
	logger := log.Default()
	logger.SetPrefix("[opsdeskctl] ")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loginCmd, err := login.New()
	if err != nil {
		logger.Fatal(err)
	}

	entities := map[string]flarc.Command{}
	for _, name := range types.Entities {
		cmd, err := entity.New(name)
		if err != nil {
			logger.Fatal(err)
		}
		entities[name] = cmd
	}

	ctl, err := flarc.NewCommandGroup(
		"opsdesk admin command line",
		common.DefaultCommonFlags(),
		flarc.WithSubcommand("login", loginCmd),
		flarc.WithSubcommand(types.EntityCategory, entities[types.EntityCategory]),
		flarc.WithSubcommand(types.EntityProject, entities[types.EntityProject]),
		flarc.WithSubcommand(types.EntityUser, entities[types.EntityUser]),
		flarc.WithSubcommand(types.EntityTask, entities[types.EntityTask]),
		flarc.WithSubcommand(types.EntityResource, entities[types.EntityResource]),
	)
	if err != nil {
		logger.Fatal(err)
	}

	os.Exit(flarc.Run(ctx, ctl, flarc.WithHelp(true)))
}
