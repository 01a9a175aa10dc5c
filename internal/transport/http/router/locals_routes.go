package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/internal/service"
	httpez "leasehub/internal/transport/http/ez"
	resp "leasehub/internal/transport/http/response"
)

type localsModule struct{ svc *service.LeasingService }

func (*localsModule) Prefix() string { return "/locals" }

func (m *localsModule) MountAPI(g *gin.RouterGroup) {
	e := httpez.New(g)

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Local]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Op:     policy.ListLocals,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.Local, error) {
			return m.svc.ListLocals(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.Local]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Op:     policy.GetLocal,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*domain.Local, error) {
			return m.svc.GetLocal(c.Request.Context(), id, c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.LocalInput, *domain.Local]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Op:     policy.CreateLocal,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.LocalInput) (*domain.Local, error) {
			return m.svc.CreateLocal(c.Request.Context(), id, *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.LocalPatch, *domain.Local]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Op:     policy.UpdateLocal,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.LocalPatch) (*domain.Local, error) {
			return m.svc.UpdateLocal(c.Request.Context(), id, c.Param("id"), *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Op:     policy.DeleteLocal,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (resp.Message, error) {
			if err := m.svc.DeleteLocal(c.Request.Context(), id, c.Param("id")); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "Local deleted successfully"}, nil
		},
	})
}
