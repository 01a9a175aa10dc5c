package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/internal/service"
	httpez "leasehub/internal/transport/http/ez"
)

type contractsModule struct{ svc *service.LeasingService }

func (*contractsModule) Prefix() string { return "/contracts" }

func (m *contractsModule) MountAPI(g *gin.RouterGroup) {
	e := httpez.New(g)

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.ContractWithDetails]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Op:     policy.ListAllContracts,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.ContractWithDetails, error) {
			return m.svc.ListContracts(c.Request.Context(), id)
		},
	})

	// 租户范围只取自 token，不信任请求参数
	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.ContractWithDetails]{
		Method: http.MethodGet,
		Path:   "/my",
		Binder: httpez.BindNone,
		Op:     policy.ListOwnContracts,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.ContractWithDetails, error) {
			return m.svc.MyContracts(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.ContractWithDetails]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Op:     policy.GetContract,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*domain.ContractWithDetails, error) {
			return m.svc.GetContract(c.Request.Context(), id, c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Payment]{
		Method: http.MethodGet,
		Path:   "/:id/payments",
		Binder: httpez.BindNone,
		Op:     policy.GetContract,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.Payment, error) {
			return m.svc.ContractPayments(c.Request.Context(), id, c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.ContractInput, *domain.ContractWithDetails]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Op:     policy.CreateContract,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.ContractInput) (*domain.ContractWithDetails, error) {
			return m.svc.CreateContract(c.Request.Context(), id, *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.ContractPatch, *domain.ContractWithDetails]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Op:     policy.UpdateContract,
		Handler: func(c *gin.Context, id domain.Identity, in *domain.ContractPatch) (*domain.ContractWithDetails, error) {
			return m.svc.UpdateContract(c.Request.Context(), id, c.Param("id"), *in)
		},
	})
}
