package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/monocle-dev/opsdesk/internal/app"
	"github.com/monocle-dev/opsdesk/internal/config"
	"github.com/monocle-dev/opsdesk/internal/router"
)

func main() {
	logger := app.DefaultLogger()

	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read config")
	}

	logger, err = app.NewLogger(logger, cfg.Env)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up logger")
	}
	app.SetMode(cfg.Env)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start")
	}

	// kill (no params) sends SIGTERM, kill -2 sends SIGINT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := a.ListenAndServe(ctx, router.NewRouter(a))
	closeErr := a.Close()
	if serveErr != nil || closeErr != nil {
		os.Exit(1)
	}
}
