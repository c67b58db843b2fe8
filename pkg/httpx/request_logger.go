package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// quietRoutes — служебные маршруты, которые опрашиваются постоянно.
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger — одна строка на запрос; ответы 5xx пишутся как warning.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)
		status := c.Writer.Status()

		logf := log.Infof
		if status >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		logf(ctx, "request id=%s trace=%s span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr, sp, c.Request.Method, route, status, c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
