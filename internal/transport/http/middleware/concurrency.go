package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit 限制同时在处理的请求数；等到请求 context 结束仍拿不到名额则 503
func ConcurrencyLimit(n int64) gin.HandlerFunc {
	if n <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	slots := semaphore.NewWeighted(n)
	return func(c *gin.Context) {
		if err := slots.Acquire(c.Request.Context(), 1); err != nil {
			reject(c, http.StatusServiceUnavailable, "concurrency")
			return
		}
		defer slots.Release(1)
		c.Next()
	}
}
