package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/types"
)

// Logger writes one access log line per request.
func Logger(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		status := ctx.Writer.Status()
		event := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("request")
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(ctx *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", ctx.Request.URL.Path).
			Msg("recovered from panic")

		resp := types.Failure("Internal Server Error", nil, http.StatusInternalServerError)
		ctx.AbortWithStatusJSON(resp.StatusCode, resp)
	})
}

// ErrorHandler answers for errors handlers attached with ctx.Error and did
// not respond to themselves.
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 || ctx.Writer.Written() {
			return
		}

		err := ctx.Errors.Last().Err
		resp := types.FromError(err, "Internal Server Error")
		if resp.StatusCode == http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("unhandled error")
		}
		ctx.JSON(resp.StatusCode, resp)
	}
}

// NotFound is the fallback for unknown routes.
func NotFound(ctx *gin.Context) {
	resp := types.Failure("Not Found", nil, http.StatusNotFound)
	ctx.JSON(resp.StatusCode, resp)
}
