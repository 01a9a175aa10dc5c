package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/internal/service"
	httpez "leasehub/internal/transport/http/ez"
)

type requestsModule struct{ svc *service.LeasingService }

func (*requestsModule) Prefix() string { return "/requests" }

func (m *requestsModule) MountAPI(g *gin.RouterGroup) {
	e := httpez.New(g)

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Request]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Op:     policy.ListRequests,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.Request, error) {
			return m.svc.ListRequests(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.Request]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Op:     policy.GetRequest,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*domain.Request, error) {
			return m.svc.GetRequest(c.Request.Context(), id, c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.RequestInput, *domain.Request]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Op:     policy.CreateRequest,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.RequestInput) (*domain.Request, error) {
			return m.svc.CreateRequest(c.Request.Context(), id, *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.RequestPatch, *domain.Request]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Op:     policy.UpdateRequest,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.RequestPatch) (*domain.Request, error) {
			return m.svc.UpdateRequest(c.Request.Context(), id, c.Param("id"), *in)
		},
	})
}
