// Package ez 在 gin 分组上注册强类型动作：先鉴权，再绑定入参，最后统一映射错误。
package ez

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	mdw "leasehub/internal/transport/http/middleware"
	resp "leasehub/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string // 例："/login"、"/:id/payments"
	Binder  Binder
	Auth    bool             // 是否要求登录
	Op      policy.Operation // 非空时在绑定入参之前做角色校验
	Handler func(c *gin.Context, id domain.Identity, in *I) (O, error)
}

// 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		id := mdw.CurrentIdentity(c)
		if err := authorize(c, id, a.Auth, a.Op); err != nil {
			resp.Fail(c, err)
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Fail(c, bindError(bindErr))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, id, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		resp.OK(c, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// authorize 带了失效 token 的调用方只在被拒绝时才看到 401，公开动作照常放行
func authorize(c *gin.Context, id domain.Identity, needLogin bool, op policy.Operation) error {
	if needLogin && !id.Authenticated() {
		if err := mdw.TokenError(c); err != nil {
			return err
		}
		return domain.Unauthenticated("No token provided", nil)
	}
	if op == "" {
		return nil
	}
	if err := policy.Authorize(id, op); err != nil {
		if tokenErr := mdw.TokenError(c); tokenErr != nil {
			return tokenErr
		}
		return err
	}
	return nil
}

func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return domain.Validation("request body too large")
	case errors.Is(err, io.EOF):
		return domain.Validation("request body is required")
	}
	return domain.Validation("invalid request body: %v", err)
}
