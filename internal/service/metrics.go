package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"leasehub/internal/domain"
)

var authEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "leasehub_auth_events_total", Help: "Identity operations by outcome"},
	[]string{"event", "outcome"},
)

func init() { prometheus.MustRegister(authEvents) }

// countAuth 失败按错误类别打标签，例如 register/conflict
func countAuth(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.KindOf(err).String()
	}
	authEvents.WithLabelValues(event, outcome).Inc()
}
