package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
)

// Message 所有错误和确认类响应的统一结构
type Message struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, data) }

func Ack(c *gin.Context, msg string) { c.JSON(http.StatusOK, Message{Message: msg}) }

// Abort 中止并输出 msg；msg 为空时用状态码默认文案
func Abort(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	c.AbortWithStatusJSON(status, Message{Message: msg})
}

// Fail 按错误类别映射状态码；服务端错误挂到 gin context 供访问日志记录，对外只给通用文案
func Fail(c *gin.Context, err error) {
	status := StatusOf(domain.KindOf(err))
	if status >= 500 {
		_ = c.Error(err)
		Abort(c, status, "")
		return
	}
	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) && de.Msg != "" {
		msg = de.Msg
	}
	Abort(c, status, msg)
}
