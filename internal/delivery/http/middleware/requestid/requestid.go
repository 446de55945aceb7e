package http_requestid_middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
)

const Header = "X-Request-ID"

// RequestID keeps the caller's X-Request-ID or generates a new one,
// stores it under http_common.RequestIDKey and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ID := c.GetHeader(Header)
		if ID == "" {
			ID = uuid.NewString()
		}

		c.Set(http_common.RequestIDKey, ID)
		c.Header(Header, ID)
		c.Next()
	}
}
