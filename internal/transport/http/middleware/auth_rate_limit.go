package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leasehub/internal/domain"
	resp "leasehub/internal/transport/http/response"
)

type counter interface {
	IncrWithTTL(ctx context.Context, key string, window time.Duration) (int64, error)
}

// AuthThrottle 登录/注册接口的固定窗口限流，按客户端 IP 和提交的用户名分别计数
type AuthThrottle struct {
	Name    string
	Window  time.Duration
	PerIP   int64
	PerUser int64
}

func (p AuthThrottle) enabled() bool { return p.Window > 0 && (p.PerIP > 0 || p.PerUser > 0) }

func AuthRateLimit(p AuthThrottle, store counter, l *zap.Logger) gin.HandlerFunc {
	if !p.enabled() || store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if p.PerIP > 0 {
			if !allow(c, ctx, store, p, "ip", c.ClientIP(), p.PerIP, l) {
				return
			}
		}
		if p.PerUser > 0 && c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				resp.Fail(c, domain.Validation("invalid request body"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			if name := usernameOf(body); name != "" {
				if !allow(c, ctx, store, p, "user", name, p.PerUser, l) {
					return
				}
			}
		}
		c.Next()
	}
}

func allow(c *gin.Context, ctx context.Context, store counter, p AuthThrottle, scope, subject string, limit int64, l *zap.Logger) bool {
	key := "rl:" + p.Name + ":" + scope + ":" + subject
	n, err := store.IncrWithTTL(ctx, key, p.Window)
	if err != nil {
		// 计数器不可用时放行，全局限速仍然生效
		l.Warn("auth throttle unavailable", zap.String("scope", scope), zap.Error(err))
		return true
	}
	if n <= limit {
		return true
	}
	l.Warn("auth throttle blocked",
		zap.String("policy", p.Name),
		zap.String("scope", scope),
		zap.Int64("attempts", n),
		zap.Int64("limit", limit),
	)
	c.Header("Retry-After", strconv.FormatInt(int64(p.Window/time.Second), 10))
	resp.Fail(c, domain.RateLimited("Too many attempts, try again later"))
	return false
}

func usernameOf(body []byte) string {
	var in struct {
		Username string `json:"username"`
	}
	if json.Unmarshal(body, &in) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(in.Username))
}
