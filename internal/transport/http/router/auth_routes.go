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

type authModule struct {
	svc      *service.AuthService
	throttle gin.HandlerFunc
}

func (*authModule) Priority() int { return 10 }

func (*authModule) Prefix() string { return "/auth" }

func (m *authModule) MountAPI(g *gin.RouterGroup) {
	open := httpez.New(g)
	throttled := httpez.New(g.Group("", m.throttle))

	httpez.RegisterAction(throttled, httpez.Action[domain.RegisterInput, *domain.Session]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Op:     policy.Register,
		Handler: func(c *gin.Context, _ domain.Identity, in *domain.RegisterInput) (*domain.Session, error) {
			return m.svc.Register(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(throttled, httpez.Action[domain.LoginInput, *domain.Session]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Op:     policy.Login,
		Handler: func(c *gin.Context, _ domain.Identity, in *domain.LoginInput) (*domain.Session, error) {
			return m.svc.Authenticate(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(open, httpez.Action[struct{}, resp.Message]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (resp.Message, error) {
			m.svc.Logout(id)
			return resp.Message{Message: "Logged out successfully"}, nil
		},
	})

	httpez.RegisterAction(open, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Op:     policy.Profile,
		Auth:   true,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*domain.User, error) {
			return m.svc.Profile(c.Request.Context(), id)
		},
	})
}
