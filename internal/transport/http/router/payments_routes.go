package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/internal/service"
	httpez "leasehub/internal/transport/http/ez"
)

type paymentsModule struct{ svc *service.LeasingService }

func (*paymentsModule) Prefix() string { return "/payments" }

func (m *paymentsModule) MountAPI(g *gin.RouterGroup) {
	e := httpez.New(g)

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.PaymentWithContract]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Op:     policy.ListAllPayments,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.PaymentWithContract, error) {
			return m.svc.ListPayments(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Payment]{
		Method: http.MethodGet,
		Path:   "/my",
		Binder: httpez.BindNone,
		Op:     policy.ListOwnPayments,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.Payment, error) {
			return m.svc.MyPayments(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.PaymentInput, *domain.Payment]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Op:     policy.CreatePayment,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.PaymentInput) (*domain.Payment, error) {
			return m.svc.CreatePayment(c.Request.Context(), id, *in)
		},
	})
}
