package middleware

import (
	"net/http"

	"anser/pkg/config"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthKeyHeader carries the pre-shared key workers and clients authenticate
// with.
const AuthKeyHeader = "authKey"

// Auth rejects requests whose authKey header matches none of the configured
// keys. With no keys configured the gate is open; useful for local runs.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := config.GlobalConfig.Server.AuthKeys
		if len(keys) == 0 {
			logger.DebugCtx(c.Request.Context(), "no auth keys configured, skipping auth")
			c.Next()
			return
		}

		provided := c.GetHeader(AuthKeyHeader)
		for _, key := range keys {
			if provided == key {
				c.Next()
				return
			}
		}

		logger.WarnCtx(c.Request.Context(), "unauthorized request to %s", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
	}
}
