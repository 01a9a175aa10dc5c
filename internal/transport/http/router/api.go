package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"leasehub/internal/core/cache"
	"leasehub/internal/core/server"
	"leasehub/internal/service"
	mdw "leasehub/internal/transport/http/middleware"
	resp "leasehub/internal/transport/http/response"
)

// Deps HTTP 层依赖的服务
type Deps struct {
	Auth    *service.AuthService
	Leasing *service.LeasingService
	Stats   *service.StatsService
	// 登录限流计数器，nil 表示关闭
	Counter cache.Counter
}

// Options 传输层限额，一般来自 config.Limits
type Options struct {
	RPS            float64
	Burst          int
	PerIPRPS       float64
	PerIPBurst     int
	Concurrency    int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	CORSOrigins    []string
	AuthThrottle   mdw.AuthThrottle
}

func DefaultOptions() Options {
	return Options{
		RPS:            200,
		Burst:          400,
		PerIPRPS:       20,
		PerIPBurst:     40,
		Concurrency:    300,
		MaxBodyBytes:   1 << 20,
		RequestTimeout: 10 * time.Second,
		AuthThrottle:   mdw.AuthThrottle{Name: "auth", Window: time.Minute, PerIP: 30, PerUser: 10},
	}
}

func NewAPIEngine(l *zap.Logger, d Deps, o Options) *gin.Engine {
	r := server.NewRouter(l, o.CORSOrigins, mdw.RecoverJSON)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.RPS), o.Burst),
		mdw.RateLimitPerIP(rate.Limit(o.PerIPRPS), o.PerIPBurst),
		mdw.ConcurrencyLimit(o.Concurrency),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, http.StatusNotFound, "") })

	api := r.Group("/api")
	api.Use(mdw.Identify(d.Auth))

	var reg Registry
	reg.Register(
		&authModule{svc: d.Auth, throttle: mdw.AuthRateLimit(o.AuthThrottle, d.Counter, l)},
		&localsModule{svc: d.Leasing},
		&contractsModule{svc: d.Leasing},
		&paymentsModule{svc: d.Leasing},
		&requestsModule{svc: d.Leasing},
		&devModule{svc: d.Stats},
	)
	l.Debug("api modules mounted", zap.Strings("prefixes", reg.MountAll(api)))
	return r
}
