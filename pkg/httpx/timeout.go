package httpx

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// HandlerTimeout — ограничивает контекст запроса таймаутом (0 — без ограничения).
func HandlerTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
