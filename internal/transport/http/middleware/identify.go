package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
)

const (
	keyIdentity = "identity"
	keyTokenErr = "identity.token_err"
)

// Verifier 把 bearer token 解析为仍然存在的用户
type Verifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// Identify 解析调用方身份，本身从不拒绝请求：
// 没有 Authorization 头、头格式错误或 token 失效时都按匿名访客继续，
// 失效原因记在上下文里，由需要登录或角色的动作返回 401。
func Identify(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(keyIdentity, domain.Anonymous())
		ah := c.GetHeader("Authorization")
		if ah == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(ah, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.Set(keyTokenErr, domain.Unauthenticated("Invalid authorization header", nil))
			c.Next()
			return
		}
		u, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			c.Set(keyTokenErr, err)
			c.Next()
			return
		}
		c.Set(keyIdentity, domain.Identity{UserID: u.ID, Username: u.Username, Role: u.Role})
		c.Next()
	}
}

// CurrentIdentity 当前调用方；未认证时为匿名访客
func CurrentIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(keyIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Anonymous()
}

// TokenError 请求带了 token 但校验失败时的原因，否则为 nil
func TokenError(c *gin.Context) error {
	if v, ok := c.Get(keyTokenErr); ok {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}
