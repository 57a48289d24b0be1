package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/clock"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/monocle-dev/opsdesk/internal/types"
)

// HealthCheck reports whether the database answers a ping.
func HealthCheck(db *gorm.DB, clk clock.Clock, logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := gin.H{
			"status":    "ok",
			"timestamp": clk.Now().UTC().Format(time.RFC3339),
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			logger.Error().Err(err).Msg("database ping failed")
			payload["status"] = "unavailable"
			HandleServiceResponse(ctx, types.Failure("Database unavailable", payload, http.StatusServiceUnavailable))
			return
		}

		HandleServiceResponse(ctx, types.Success("OpsDesk is running", payload, http.StatusOK))
	}
}
