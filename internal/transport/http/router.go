package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Gunvolt24/pos_print/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin-движок со всеми middleware.
// otelServiceName пустой — без otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/print", httpx.HandlerTimeout(h.timeout))
	api.POST("/orders", h.printOrder)
	api.POST("/preview/:kind", h.preview)
	api.GET("/config", h.configSnapshot)
	api.POST("/config/invalidate", h.invalidateConfig)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		if allow := allowedMethods(r.Routes(), c.Request.URL.Path); allow != "" {
			c.Header("Allow", allow)
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// allowedMethods — методы маршрутов, чей шаблон совпадает с path (":param" — любой сегмент).
func allowedMethods(routes gin.RoutesInfo, path string) string {
	seen := make(map[string]struct{})
	for _, rt := range routes {
		if matchPattern(rt.Path, path) {
			seen[rt.Method] = struct{}{}
		}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
