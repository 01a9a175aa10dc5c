package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	resp "leasehub/internal/transport/http/response"
)

const namespace = "leasehub"

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method"},
	)
	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "http_in_flight_requests", Help: "Requests currently being served."},
	)
	httpRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_rejected_total", Help: "Requests turned away by a transport limit."},
		[]string{"reason"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, httpInFlight, httpRejected) }

// reject 按 reason 计数后以 status 中止请求
func reject(c *gin.Context, status int, reason string) {
	httpRejected.WithLabelValues(reason).Inc()
	resp.Abort(c, status, "")
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpReqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler 以 Prometheus 文本格式输出默认 registry
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) { h.ServeHTTP(c.Writer, c.Request) }
}
