package middleware

import (
	"net/http"

	"anser/pkg/function"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TargetVersionHeader names the controller version a caller was built
// against.
const TargetVersionHeader = "targetVersion"

// VersionCheck rejects requests whose targetVersion header does not match the
// controller version. Comparison is case insensitive; a missing header fails
// the same way as a mismatched one.
func VersionCheck(controllerVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(TargetVersionHeader)
		if !function.VersionsCompatible(provided, controllerVersion) {
			logger.WarnCtx(c.Request.Context(),
				"rejecting request to %s with target version %q (controller is %s)",
				c.Request.URL.Path, provided, controllerVersion)
			c.JSON(http.StatusBadRequest, gin.H{"error": "incompatible target version"})
			c.Abort()
			return
		}
		c.Next()
	}
}
