package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/internal/service"
	httpez "leasehub/internal/transport/http/ez"
)

type devModule struct{ svc *service.StatsService }

func (*devModule) Priority() int { return 200 }

func (*devModule) Prefix() string { return "/dev" }

func (m *devModule) MountAPI(g *gin.RouterGroup) {
	httpez.RegisterAction(httpez.New(g), httpez.Action[struct{}, *service.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: httpez.BindNone,
		Op:     policy.ViewStats,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*service.Stats, error) {
			return m.svc.Snapshot(c.Request.Context(), id)
		},
	})
}
