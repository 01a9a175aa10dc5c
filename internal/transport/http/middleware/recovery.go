package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "leasehub/internal/transport/http/response"
)

// RecoverJSON panic 恢复后的统一响应（堆栈已由 ginzap 记录）
func RecoverJSON(c *gin.Context, _ any) {
	resp.Abort(c, http.StatusInternalServerError, "")
}
