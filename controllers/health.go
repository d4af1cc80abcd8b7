// controllers/health.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quotedesk-backend/config"
)

// Health reports whether the database answers a ping.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Msg("database ping failed")
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"status": status, "database": status})
}
