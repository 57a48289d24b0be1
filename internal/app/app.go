package app

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/monocle-dev/opsdesk/db"
	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/config"
)

// App is what request handling depends on. It is built once at startup
// and passed down explicitly.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Logger zerolog.Logger
	Clock  clock.Clock
	Tokens *auth.Tokens
}

// New connects to and migrates the configured database.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	clk := clock.WallClock

	gdb, err := db.ConnectDatabase(cfg.Database, clk)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
		return nil, errors.Trace(err)
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	if err := db.MigrateDatabase(gdb); err != nil {
		logger.Error().Err(err).Msg("failed to migrate database")
		_ = db.Close(gdb)
		return nil, errors.Trace(err)
	}

	return &App{
		Config: cfg,
		DB:     gdb,
		Logger: logger,
		Clock:  clk,
		Tokens: auth.NewTokens(cfg.JWT, clk),
	}, nil
}

func (a *App) Close() error {
	if err := db.Close(a.DB); err != nil {
		a.Logger.Error().Err(err).Msg("failed to close database")
		return err
	}
	a.Logger.Info().Msg("disconnected from database")
	return nil
}
