package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monocle-dev/opsdesk/internal/config"
)

// SetMode switches gin out of debug mode outside local runs.
func SetMode(env string) {
	if env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
}

// ListenAndServe serves handler until ctx is done, then shuts down within
// the configured timeout.
func (a *App) ListenAndServe(ctx context.Context, handler http.Handler) error {
	httpCfg := a.Config.HTTP

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.Logger.Error().Err(err).Msg("failed to listen and serve http")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error().Err(err).Msg("failed to shutdown http server")
		return err
	}
	a.Logger.Info().Msg("shut down http server")
	return nil
}
