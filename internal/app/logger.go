package app

import (
	"io"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/config"
)

// DefaultLogger is used until the configuration has been read.
func DefaultLogger() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}

// NewLogger adapts base to the environment: trace level on a console
// writer for local runs, debug for dev and info for prod.
func NewLogger(base zerolog.Logger, env string) (zerolog.Logger, error) {
	w := io.Writer(os.Stdout)
	switch env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	default:
		return base, errors.NotValidf("env %q", env)
	}

	return base.Output(w), nil
}
