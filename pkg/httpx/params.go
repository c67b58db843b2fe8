package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseCopies — читает copies из query с дефолтом и границами [1, maxCopies].
// Нечисловое значение игнорируется.
func ParseCopies(c *gin.Context, defaultCopies, maxCopies int) int {
	copies := ClampInt(defaultCopies, 1, maxCopies)
	raw, ok := c.GetQuery("copies")
	if !ok {
		return copies
	}
	if v, err := strconv.Atoi(raw); err == nil {
		copies = ClampInt(v, 1, maxCopies)
	}
	return copies
}

// ParseBoolQuery — булев флаг из query (true/false/1/0); иначе def.
func ParseBoolQuery(c *gin.Context, key string, def bool) bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
