package httpx

import (
	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware — id запроса кассы в контексте и в ответе.
// Переданный X-Request-ID очищается через ctxmeta.SanitizeRequestID;
// пустой после очистки заменяется UUID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ctxmeta.SanitizeRequestID(c.GetHeader(ctxmeta.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(ctxmeta.HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
