package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/filmorate/internal/config"
)

// ReadOnlyBadGatewayMiddleware rejects every write when the instance runs in read-only mode.
func ReadOnlyBadGatewayMiddleware(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != config.ModeReadOnly {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Bad Gateway",
			"message": "Write operations not allowed on read-only instance",
			"code":    "READ_ONLY_INSTANCE",
		})
		c.Abort()
	}
}
